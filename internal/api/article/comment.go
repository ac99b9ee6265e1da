package article

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/service"
	"artshare-backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler 处理与评论相关的HTTP请求
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler 创建一个新的 CommentHandler 实例
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService}
}

// Read 按时间升序分页获取文章的评论
func (h *CommentHandler) Read(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	var pagination model.Pagination
	if err := c.ShouldBindQuery(&pagination); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的分页参数", err))
		return
	}
	pagination.Normalize()

	comments, count, err := h.commentService.ReadByArticleID(userID, articleID, pagination)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreatePaginationForm(c, comments, count, pagination.Page, pagination.Limit)
}

// Write 在文章下创建评论
func (h *CommentHandler) Write(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	var input model.CreateComment
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Logger.Warn("创建评论失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	comment, err := h.commentService.Write(userID, articleID, input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, comment)
}

// LikeOrUnlike 评论点赞开关
func (h *CommentHandler) LikeOrUnlike(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的评论ID"))
		return
	}

	liked, err := h.commentService.LikeOrUnlike(userID, articleID, commentID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, gin.H{"myPick": liked})
}
