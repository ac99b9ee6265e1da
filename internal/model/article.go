package model

import "time"

// ArticleType 文章类型（标签变体，规则挂在方法上）
type ArticleType string

const (
	ArticleTypeWriting  ArticleType = "writing"
	ArticleTypeQuestion ArticleType = "question"
	ArticleTypeDrawing  ArticleType = "drawing"
)

// Valid 检查文章类型是否合法
func (t ArticleType) Valid() bool {
	switch t {
	case ArticleTypeWriting, ArticleTypeQuestion, ArticleTypeDrawing:
		return true
	}
	return false
}

// RequiresCommentAnchor 绘画类型的文章要求评论带坐标
func (t ArticleType) RequiresCommentAnchor() bool {
	return t == ArticleTypeDrawing
}

// Article 文章模型
type Article struct {
	ID           int          `json:"id"`
	WriterID     int          `json:"-"`
	Type         ArticleType  `json:"type"`
	Contents     string       `json:"contents"`
	ReportCount  int          `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Writer       *UserSummary `json:"writer,omitempty"`
	Images       []*Image     `json:"images,omitempty"`
	Thumbnail    *string      `json:"thumbnail"`
	Comments     []*Comment   `json:"comments,omitempty"`
	CommentCount int          `json:"commentCount"`
	LikeCount    int          `json:"likeCount"`
	MyPick       bool         `json:"myPick"`
	IsMine       bool         `json:"isMine"`
}

// Image 文章图片，position 可能为空（存为NULL）
type Image struct {
	ID        int       `json:"id"`
	ArticleID int       `json:"-"`
	URL       string    `json:"url"`
	Position  *int      `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateImage 创建/更新文章时的图片输入
type CreateImage struct {
	URL      string `json:"url" binding:"required"`
	Position *int   `json:"position"`
}

// CreateArticle 创建文章的输入
type CreateArticle struct {
	Type     ArticleType   `json:"type" binding:"required,articletype"`
	Contents string        `json:"contents" binding:"required"`
	Images   []CreateImage `json:"images"`
}

// UpdateArticle 修改文章的输入，nil 字段表示不改
type UpdateArticle struct {
	Contents *string       `json:"contents"`
	Images   []CreateImage `json:"images"`
}

// ArticleFilter 列表查询过滤条件
type ArticleFilter struct {
	NoReplyOnly   bool
	SearchKeyword string
}

// Pagination 分页参数
type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize 修正非法的分页参数
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
}

// Offset 计算查询偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
