package mysql

import (
	"artshare-backend/internal/model"
	"database/sql"
	"log"
	"time"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	log.Printf("尝试创建新用户：%s", user.Email)
	query := `INSERT INTO users (nickname, email, password_hash, profile_image, bio, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query, user.Nickname, user.Email, user.PasswordHash, user.ProfileImage, user.Bio)
	if err != nil {
		log.Printf("创建用户失败：%v", err)
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Printf("获取新用户ID失败：%v", err)
		return err
	}
	user.ID = int(id)
	log.Printf("用户创建成功：ID=%d", user.ID)
	return nil
}

// FindByID 通过ID查找用户
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT id, nickname, email, password_hash, profile_image, bio, created_at, updated_at
              FROM users WHERE id = ?`
	var user model.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.ProfileImage, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail 通过邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT id, nickname, email, password_hash, profile_image, bio, created_at, updated_at
              FROM users WHERE email = ?`
	var user model.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.ProfileImage, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByNickname 通过昵称查找用户
func (r *userRepository) FindByNickname(nickname string) (*model.User, error) {
	query := `SELECT id, nickname, email, password_hash, profile_image, bio, created_at, updated_at
              FROM users WHERE nickname = ?`
	var user model.User
	err := r.db.QueryRow(query, nickname).Scan(
		&user.ID, &user.Nickname, &user.Email, &user.PasswordHash, &user.ProfileImage, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update 更新用户信息
func (r *userRepository) Update(user *model.User) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET nickname = ?, email = ?, profile_image = ?, bio = ?, updated_at = ?
		WHERE id = ?`,
		user.Nickname, user.Email, user.ProfileImage, user.Bio, time.Now(), user.ID)
	return err
}

// Delete 删除用户
func (r *userRepository) Delete(id int) error {
	log.Printf("尝试删除用户：ID=%d", id)
	query := `DELETE FROM users WHERE id = ?`
	_, err := r.db.Exec(query, id)
	if err != nil {
		log.Printf("删除用户失败：%v", err)
		return err
	}
	log.Printf("用户删除成功：ID=%d", id)
	return nil
}
