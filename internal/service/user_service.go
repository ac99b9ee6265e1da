package service

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/repository/interfaces"
	"artshare-backend/internal/util"
	"fmt"
	"log"
	"sync"
	"time"

	"go.uber.org/zap"

	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo       interfaces.UserRepository
	emailService   *EmailService
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, emailService *EmailService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		emailService:   emailService,
		tokenBlacklist: make(map[string]time.Time),
	}
}

// IsNicknameTaken 检查昵称是否已被使用
func (s *UserService) IsNicknameTaken(nickname string) (bool, error) {
	user, err := s.userRepo.FindByNickname(nickname)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Register 注册新用户
func (s *UserService) Register(user *model.User) error {
	// 检查昵称是否已被使用
	taken, err := s.IsNicknameTaken(user.Nickname)
	if err != nil {
		return err
	}
	if taken {
		return errors.New(errors.ErrUserExists, "nickname already exists")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	// 创建用户
	err = s.userRepo.Create(user)
	if err != nil {
		return err
	}

	// 发送欢迎邮件，失败不影响注册
	s.emailService.SendWelcomeEmail(user.Email, user.Nickname)

	return nil
}

// Login 用户登录
func (s *UserService) Login(email, password string) (*model.User, error) {
	log.Printf("尝试用户登录：%s", email)

	// 查找用户
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		log.Printf("用户登录失败，未找到用户：%v", err)
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	// 验证密码
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		log.Printf("用户登录失败，密码不正确：%v", err)
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	log.Printf("用户登录成功：ID=%d", user.ID)
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// UpdateUser 更新用户信息
func (s *UserService) UpdateUser(user *model.User) error {
	existingUser, err := s.userRepo.FindByID(user.ID)
	if err != nil {
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if existingUser == nil {
		return errors.New(errors.ErrUserNotFound, "user not found")
	}

	// 只更新允许修改的字段
	existingUser.Nickname = user.Nickname
	existingUser.Bio = user.Bio

	if err := s.userRepo.Update(existingUser); err != nil {
		return fmt.Errorf("更新用户失败: %w", err)
	}
	return nil
}

// UpdateAvatar 更新用户头像
func (s *UserService) UpdateAvatar(userID int, avatarURL string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	user.ProfileImage = avatarURL
	return s.userRepo.Update(user)
}

// Logout 将客户端出示的令牌加入黑名单，使当前会话立即失效
func (s *UserService) Logout(userID int, token string) error {
	s.blacklistMutex.Lock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour) // 令牌在黑名单中保留24小时
	s.blacklistMutex.Unlock()
	util.Logger.Info("用户注销，令牌已加入黑名单", zap.Int("user_id", userID))
	return nil
}

func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	expiry, exists := s.tokenBlacklist[token]
	s.blacklistMutex.RUnlock()
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		s.blacklistMutex.Lock()
		delete(s.tokenBlacklist, token)
		s.blacklistMutex.Unlock()
		return false
	}
	return true
}

type UserServiceInterface interface {
	Register(user *model.User) error
	Login(email, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUser(user *model.User) error
	UpdateAvatar(userID int, avatarURL string) error
	Logout(userID int, token string) error
	IsTokenBlacklisted(token string) bool
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
