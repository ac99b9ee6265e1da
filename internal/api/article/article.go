package article

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/service"
	"artshare-backend/internal/storage"
	"artshare-backend/internal/util"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleHandler 处理与文章相关的HTTP请求
type ArticleHandler struct {
	articleService service.ArticleServiceInterface
	storage        storage.Storage
}

// NewArticleHandler 创建一个新的 ArticleHandler 实例
func NewArticleHandler(articleService service.ArticleServiceInterface, storage storage.Storage) *ArticleHandler {
	return &ArticleHandler{articleService, storage}
}

// Read 获取文章列表，支持分页和按内容搜索
func (h *ArticleHandler) Read(c *gin.Context) {
	userID := c.GetInt("user_id")

	var pagination model.Pagination
	if err := c.ShouldBindQuery(&pagination); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的分页参数", err))
		return
	}
	pagination.Normalize()

	filter := model.ArticleFilter{
		SearchKeyword: c.Query("searchKeyword"),
	}

	articles, count, err := h.articleService.Read(userID, pagination, filter)
	if err != nil {
		util.Logger.Error("获取文章列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	util.CreatePaginationForm(c, articles, count, pagination.Page, pagination.Limit)
}

// ReadNoReply 获取没有任何评论的提问类文章
func (h *ArticleHandler) ReadNoReply(c *gin.Context) {
	userID := c.GetInt("user_id")

	var pagination model.Pagination
	if err := c.ShouldBindQuery(&pagination); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的分页参数", err))
		return
	}
	pagination.Normalize()

	filter := model.ArticleFilter{NoReplyOnly: true}

	articles, count, err := h.articleService.Read(userID, pagination, filter)
	if err != nil {
		util.Logger.Error("获取未回复文章列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	util.CreatePaginationForm(c, articles, count, pagination.Page, pagination.Limit)
}

// GetOne 获取文章详情
func (h *ArticleHandler) GetOne(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	article, err := h.articleService.GetOneDetailArticle(userID, articleID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, article)
}

// Write 创建文章
func (h *ArticleHandler) Write(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input model.CreateArticle
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Logger.Warn("创建文章失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	article, err := h.articleService.Write(userID, input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, article)
}

// Modify 修改文章，仅作者可操作
func (h *ArticleHandler) Modify(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	var input model.UpdateArticle
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Logger.Warn("修改文章失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	article, err := h.articleService.Modify(userID, articleID, input)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, article)
}

// LikeOrUnlike 文章点赞开关
func (h *ArticleHandler) LikeOrUnlike(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	liked, err := h.articleService.LikeOrUnlike(userID, articleID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, gin.H{"myPick": liked})
}

// Report 举报文章
func (h *ArticleHandler) Report(c *gin.Context) {
	userID := c.GetInt("user_id")
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章ID"))
		return
	}

	var input model.CreateReport
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	if err := h.articleService.Report(userID, articleID, input.Reason); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.CreateResponseForm(c, nil)
}

// UploadImage 上传文章图片，返回存储后的URL
func (h *ArticleHandler) UploadImage(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("image")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("articles/%d/%s", userID, filename)

	url, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传图片失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传图片失败", err))
		return
	}

	util.CreateResponseForm(c, gin.H{"url": url})
}
