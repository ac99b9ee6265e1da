package model

import "time"

// ArticleLike 文章点赞关系，(user_id, article_id) 唯一
type ArticleLike struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ArticleID int       `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentLike 评论点赞关系，(user_id, comment_id) 唯一
type CommentLike struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CommentID int       `json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleReport 举报记录，(user_id, article_id) 唯一
type ArticleReport struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ArticleID int       `json:"articleId"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReport 举报文章的输入
type CreateReport struct {
	Reason string `json:"reason" binding:"required"`
}
