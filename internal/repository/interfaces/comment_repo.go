package interfaces

import "artshare-backend/internal/model"

// CommentRepository 定义了评论相关的数据库操作接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	GetOnArticle(articleID, commentID int) (*model.Comment, error)
	ListByArticleID(userID, articleID, page, pageSize int) ([]*model.Comment, int, error)
	Preview(userID, articleID, limit int) ([]*model.Comment, error)
	ToggleLike(like *model.CommentLike) (bool, error)
}
