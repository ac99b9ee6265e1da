package service

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/repository/interfaces"
	"artshare-backend/internal/util"

	"go.uber.org/zap"
)

// CommentService 处理评论相关的业务逻辑
type CommentService struct {
	articleRepo interfaces.ArticleRepository
	commentRepo interfaces.CommentRepository
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(articleRepo interfaces.ArticleRepository, commentRepo interfaces.CommentRepository) *CommentService {
	return &CommentService{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
	}
}

// Write 在文章下创建评论。校验顺序：文章存在、未被举报下架、
// 绘画类型必须带坐标、图片锚点属于本文、父评论属于本文
func (s *CommentService) Write(writerID, articleID int, input model.CreateComment) (*model.Comment, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errors.New(errors.ErrArticleNotFound, "article not found")
	}
	if article.ReportCount >= suppressThreshold() {
		return nil, errors.New(errors.ErrTooManyReports, "article suppressed by reports")
	}

	if article.Type.RequiresCommentAnchor() && !input.HasAnchor() {
		return nil, errors.New(errors.ErrCommentPositionRequired, "drawing article requires comment coordinates")
	}

	if input.ImageID != nil {
		image, err := s.articleRepo.GetImage(articleID, *input.ImageID)
		if err != nil {
			return nil, err
		}
		if image == nil {
			return nil, errors.New(errors.ErrImageNotFound, "image not found on this article")
		}
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.GetOnArticle(articleID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.New(errors.ErrParentCommentNotFound, "parent comment not found on this article")
		}
	}

	comment := &model.Comment{
		ArticleID: articleID,
		WriterID:  writerID,
		Contents:  input.Contents,
		ImageID:   input.ImageID,
		ParentID:  input.ParentID,
		XPosition: input.XPosition,
		YPosition: input.YPosition,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err),
			zap.Int("writer_id", writerID), zap.Int("article_id", articleID))
		return nil, err
	}

	return comment, nil
}

// ReadByArticleID 按时间升序分页获取文章的评论。
// 超出范围的页返回空列表和正确的总数，不报错
func (s *CommentService) ReadByArticleID(userID, articleID int, pagination model.Pagination) ([]*model.Comment, int, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, 0, err
	}
	if article == nil {
		return nil, 0, errors.New(errors.ErrArticleNotFound, "article not found")
	}

	pagination.Normalize()
	comments, total, err := s.commentRepo.ListByArticleID(userID, articleID, pagination.Page, pagination.Limit)
	if err != nil {
		util.Logger.Error("查询评论列表失败", zap.Error(err), zap.Int("article_id", articleID))
		return nil, 0, err
	}

	if comments == nil {
		comments = []*model.Comment{}
	}
	return comments, total, nil
}

// GetOne 获取限定在某篇文章下的一条评论
func (s *CommentService) GetOne(articleID, commentID int) (*model.Comment, error) {
	comment, err := s.commentRepo.GetOnArticle(articleID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errors.New(errors.ErrCommentNotFound, "comment not found")
	}
	return comment, nil
}

// LikeOrUnlike 评论点赞开关，返回操作后的状态
func (s *CommentService) LikeOrUnlike(userID, articleID, commentID int) (bool, error) {
	comment, err := s.commentRepo.GetOnArticle(articleID, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		return false, errors.New(errors.ErrCommentNotFound, "comment not found")
	}

	liked, err := s.commentRepo.ToggleLike(&model.CommentLike{UserID: userID, CommentID: commentID})
	if err != nil {
		util.Logger.Error("切换评论点赞状态失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("comment_id", commentID))
		return false, err
	}
	return liked, nil
}

// CommentServiceInterface 供 handler 层依赖
type CommentServiceInterface interface {
	Write(writerID, articleID int, input model.CreateComment) (*model.Comment, error)
	ReadByArticleID(userID, articleID int, pagination model.Pagination) ([]*model.Comment, int, error)
	GetOne(articleID, commentID int) (*model.Comment, error)
	LikeOrUnlike(userID, articleID, commentID int) (bool, error)
}

// 确保 CommentService 实现了 CommentServiceInterface
var _ CommentServiceInterface = (*CommentService)(nil)
