package service

import (
	"artshare-backend/config"
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/repository/interfaces"
	"artshare-backend/internal/util"

	"go.uber.org/zap"
)

// ArticleService 处理文章相关的业务逻辑
type ArticleService struct {
	articleRepo  interfaces.ArticleRepository
	commentRepo  interfaces.CommentRepository
	emailService *EmailService
}

// NewArticleService 创建一个新的 ArticleService 实例
func NewArticleService(articleRepo interfaces.ArticleRepository, commentRepo interfaces.CommentRepository, emailService *EmailService) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		emailService: emailService,
	}
}

// 列表页内嵌的评论预览条数
const commentPreviewLimit = 3

// suppressThreshold 读取举报下架阈值
func suppressThreshold() int {
	return config.AppConfig.ReportSuppressThreshold
}

// Read 分页获取文章列表。被举报下架的文章不出现在任何列表里；
// count 始终是过滤后集合的总量，超出范围的页返回空列表
func (s *ArticleService) Read(userID int, pagination model.Pagination, filter model.ArticleFilter) ([]*model.Article, int, error) {
	pagination.Normalize()

	articles, total, err := s.articleRepo.List(userID, filter, pagination.Page, pagination.Limit, suppressThreshold())
	if err != nil {
		util.Logger.Error("查询文章列表失败", zap.Error(err))
		return nil, 0, err
	}

	// 为每篇文章附上最早的几条评论作为预览
	for _, article := range articles {
		preview, err := s.commentRepo.Preview(userID, article.ID, commentPreviewLimit)
		if err != nil {
			util.Logger.Error("获取评论预览失败", zap.Error(err), zap.Int("article_id", article.ID))
			return nil, 0, err
		}
		article.Comments = preview
	}

	if articles == nil {
		articles = []*model.Article{}
	}
	return articles, total, nil
}

// GetOneDetailArticle 获取文章详情。已下架的文章仍可按ID查看
func (s *ArticleService) GetOneDetailArticle(userID, articleID int) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errors.New(errors.ErrArticleNotFound, "article not found")
	}

	images, err := s.articleRepo.GetImages(articleID)
	if err != nil {
		return nil, err
	}
	article.Images = images

	// 详情页返回完整评论串，按 GetByID 统计的总数一次取齐
	comments := []*model.Comment{}
	if article.CommentCount > 0 {
		comments, _, err = s.commentRepo.ListByArticleID(userID, articleID, 1, article.CommentCount)
		if err != nil {
			return nil, err
		}
	}
	article.Comments = comments

	myPick, err := s.articleRepo.IsLikedByUser(articleID, userID)
	if err != nil {
		return nil, err
	}
	article.MyPick = myPick
	article.IsMine = article.WriterID == userID

	return article, nil
}

// Write 创建文章。图片位置先经过统一校验，文章与图片在一个事务里落库
func (s *ArticleService) Write(userID int, input model.CreateArticle) (*model.Article, error) {
	if !input.Type.Valid() {
		return nil, errors.New(errors.ErrValidation, "invalid article type")
	}

	images, err := AssignImagePositions(input.Images)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		WriterID: userID,
		Type:     input.Type,
		Contents: input.Contents,
	}
	if err := s.articleRepo.Create(article, images); err != nil {
		util.Logger.Error("创建文章失败", zap.Error(err), zap.Int("writer_id", userID))
		return nil, err
	}

	return s.GetOneDetailArticle(userID, article.ID)
}

// Modify 修改文章，只有作者本人可以操作
func (s *ArticleService) Modify(writerID, articleID int, input model.UpdateArticle) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errors.New(errors.ErrArticleNotFound, "article not found")
	}
	if article.WriterID != writerID {
		return nil, errors.New(errors.ErrNotWriter, "only the writer can modify this article")
	}

	if input.Contents != nil {
		article.Contents = *input.Contents
	}

	replaceImages := input.Images != nil
	var images []model.CreateImage
	if replaceImages {
		images, err = AssignImagePositions(input.Images)
		if err != nil {
			return nil, err
		}
	}

	if err := s.articleRepo.Update(article, images, replaceImages); err != nil {
		util.Logger.Error("更新文章失败", zap.Error(err), zap.Int("article_id", articleID))
		return nil, err
	}

	return s.GetOneDetailArticle(writerID, articleID)
}

// LikeOrUnlike 文章点赞开关，返回操作后的状态
func (s *ArticleService) LikeOrUnlike(userID, articleID int) (bool, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return false, err
	}
	if article == nil {
		return false, errors.New(errors.ErrArticleNotFound, "article not found")
	}

	liked, err := s.articleRepo.ToggleLike(&model.ArticleLike{UserID: userID, ArticleID: articleID})
	if err != nil {
		util.Logger.Error("切换点赞状态失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("article_id", articleID))
		return false, err
	}
	return liked, nil
}

// Report 举报文章。同一用户重复举报会被唯一键挡住；
// 计数第一次达到阈值时给运营邮箱发告警
func (s *ArticleService) Report(userID, articleID int, reason string) error {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return errors.New(errors.ErrArticleNotFound, "article not found")
	}

	report := &model.ArticleReport{
		UserID:    userID,
		ArticleID: articleID,
		Reason:    reason,
	}
	newCount, err := s.articleRepo.CreateReport(report)
	if err != nil {
		return err
	}

	if newCount == suppressThreshold() {
		util.Logger.Warn("文章达到举报阈值，已下架",
			zap.Int("article_id", articleID),
			zap.Int("report_count", newCount))
		s.emailService.SendReportAlert(articleID, newCount, reason)
	}

	return nil
}

// ArticleServiceInterface 供 handler 层依赖
type ArticleServiceInterface interface {
	Read(userID int, pagination model.Pagination, filter model.ArticleFilter) ([]*model.Article, int, error)
	GetOneDetailArticle(userID, articleID int) (*model.Article, error)
	Write(userID int, input model.CreateArticle) (*model.Article, error)
	Modify(writerID, articleID int, input model.UpdateArticle) (*model.Article, error)
	LikeOrUnlike(userID, articleID int) (bool, error)
	Report(userID, articleID int, reason string) error
}

// 确保 ArticleService 实现了 ArticleServiceInterface
var _ ArticleServiceInterface = (*ArticleService)(nil)
