package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID           int        `json:"id"`
	Nickname     string     `json:"nickname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // 密码哈希不应在JSON中暴露
	ProfileImage string     `json:"profileImage"`
	Bio          string     `json:"bio"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// UserSummary 嵌入文章/评论响应里的作者摘要
type UserSummary struct {
	ID           int    `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}
