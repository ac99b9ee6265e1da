package model

import "time"

// Comment 评论模型。回复以平铺行存储，parentId 记录父评论
type Comment struct {
	ID        int          `json:"id"`
	ArticleID int          `json:"articleId"`
	WriterID  int          `json:"-"`
	Contents  string       `json:"contents"`
	ImageID   *int         `json:"imageId,omitempty"`
	ParentID  *int         `json:"parentId,omitempty"`
	XPosition *float64     `json:"xPosition,omitempty"`
	YPosition *float64     `json:"yPosition,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Writer    *UserSummary `json:"writer,omitempty"`
	LikeCount int          `json:"likeCount"`
	MyPick    bool         `json:"myPick"`
}

// CreateComment 创建评论的输入
type CreateComment struct {
	Contents  string   `json:"contents" binding:"required"`
	ImageID   *int     `json:"imageId"`
	ParentID  *int     `json:"parentId"`
	XPosition *float64 `json:"xPosition"`
	YPosition *float64 `json:"yPosition"`
}

// HasAnchor 评论是否带坐标
func (c CreateComment) HasAnchor() bool {
	return c.XPosition != nil && c.YPosition != nil
}
