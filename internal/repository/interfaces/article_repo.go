package interfaces

import "artshare-backend/internal/model"

// ArticleRepository 定义了文章相关的数据库操作接口
type ArticleRepository interface {
	Create(article *model.Article, images []model.CreateImage) error
	GetByID(id int) (*model.Article, error)
	Update(article *model.Article, images []model.CreateImage, replaceImages bool) error
	List(userID int, filter model.ArticleFilter, page, pageSize, suppressThreshold int) ([]*model.Article, int, error)
	GetImages(articleID int) ([]*model.Image, error)
	GetImage(articleID, imageID int) (*model.Image, error)
	ToggleLike(like *model.ArticleLike) (bool, error)
	IsLikedByUser(articleID, userID int) (bool, error)
	CreateReport(report *model.ArticleReport) (int, error)
}
