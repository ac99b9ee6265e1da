package user

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/model"
	"artshare-backend/internal/service"
	"artshare-backend/internal/util"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserService) Login(email, password string) (*model.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserService) UpdateAvatar(userID int, avatarURL string) error {
	args := m.Called(userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserService) Logout(userID int, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

func (m *MockUserService) IsTokenBlacklisted(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

// 确保 MockUserService 实现了 UserServiceInterface
var _ service.UserServiceInterface = (*MockUserService)(nil)

// TestRegister 测试注册处理器
func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")

	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/register", handler.Register)

	// 模拟成功注册
	mockService.On("Register", mock.AnythingOfType("*model.User")).Return(nil).Once()

	body := []byte(`{"nickname": "tester", "email": "test@example.com", "password": "StrongP@ssw0rd"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int `json:"code"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	mockService.AssertExpectations(t)

	// 模拟注册失败（昵称已存在）
	mockService.On("Register", mock.AnythingOfType("*model.User")).
		Return(errors.New(errors.ErrUserExists, "nickname already exists")).Once()

	req, _ = http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

// TestLogout 登出时吊销请求头里携带的令牌
func TestLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")

	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/logout", func(c *gin.Context) { c.Set("user_id", 2) }, handler.Logout)

	mockService.On("Logout", 2, "session-token").Return(nil)

	req, _ := http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)

	// 缺少 Bearer 头时拒绝登出
	req, _ = http.NewRequest("POST", "/logout", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRegisterWeakPassword 弱密码直接被拒绝
func TestRegisterWeakPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")

	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/register", handler.Register)

	body := []byte(`{"nickname": "tester", "email": "test@example.com", "password": "weak"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything)
}

// TestLogin 测试登录处理器
func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")

	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/login", handler.Login)

	// 模拟成功登录
	mockUser := &model.User{ID: 1, Email: "test@example.com"}
	mockService.On("Login", "test@example.com", "password123").Return(mockUser, nil)

	body := []byte(`{"email": "test@example.com", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.Contains(t, response.Data, "token")
	mockService.AssertExpectations(t)

	// 模拟登录失败
	mockService.On("Login", "test@example.com", "wrongpassword").
		Return(nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password"))

	body = []byte(`{"email": "test@example.com", "password": "wrongpassword"}`)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}
