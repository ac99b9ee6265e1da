package interfaces

import "artshare-backend/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByNickname(nickname string) (*model.User, error)
	Update(user *model.User) error
	Delete(id int) error
}
