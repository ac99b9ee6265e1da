package article

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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockArticleService 是 ArticleServiceInterface 的模拟实现
type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Read(userID int, pagination model.Pagination, filter model.ArticleFilter) ([]*model.Article, int, error) {
	args := m.Called(userID, pagination, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Article), args.Int(1), args.Error(2)
}

func (m *MockArticleService) GetOneDetailArticle(userID, articleID int) (*model.Article, error) {
	args := m.Called(userID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Write(userID int, input model.CreateArticle) (*model.Article, error) {
	args := m.Called(userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Modify(writerID, articleID int, input model.UpdateArticle) (*model.Article, error) {
	args := m.Called(writerID, articleID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) LikeOrUnlike(userID, articleID int) (bool, error) {
	args := m.Called(userID, articleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleService) Report(userID, articleID int, reason string) error {
	args := m.Called(userID, articleID, reason)
	return args.Error(0)
}

// MockCommentService 是 CommentServiceInterface 的模拟实现
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Write(writerID, articleID int, input model.CreateComment) (*model.Comment, error) {
	args := m.Called(writerID, articleID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) ReadByArticleID(userID, articleID int, pagination model.Pagination) ([]*model.Comment, int, error) {
	args := m.Called(userID, articleID, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Comment), args.Int(1), args.Error(2)
}

func (m *MockCommentService) GetOne(articleID, commentID int) (*model.Comment, error) {
	args := m.Called(articleID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) LikeOrUnlike(userID, articleID, commentID int) (bool, error) {
	args := m.Called(userID, articleID, commentID)
	return args.Bool(0), args.Error(1)
}

var _ service.ArticleServiceInterface = (*MockArticleService)(nil)
var _ service.CommentServiceInterface = (*MockCommentService)(nil)

func setupRouter(articleSvc *MockArticleService, commentSvc *MockCommentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("articletype", util.ValidateArticleType)
	}

	articleHandler := NewArticleHandler(articleSvc, nil)
	commentHandler := NewCommentHandler(commentSvc)

	router := gin.New()
	// 模拟认证中间件写入用户ID
	router.Use(func(c *gin.Context) {
		c.Set("user_id", 2)
		c.Next()
	})
	router.GET("/articles", articleHandler.Read)
	router.GET("/articles/no-reply", articleHandler.ReadNoReply)
	router.GET("/articles/:id", articleHandler.GetOne)
	router.POST("/articles", articleHandler.Write)
	router.PUT("/articles/:id", articleHandler.Modify)
	router.PATCH("/articles/:id", articleHandler.LikeOrUnlike)
	router.POST("/articles/:id/reports", articleHandler.Report)
	router.GET("/articles/:id/comments", commentHandler.Read)
	router.POST("/articles/:id/comments", commentHandler.Write)
	router.PATCH("/articles/:id/comments/:commentId", commentHandler.LikeOrUnlike)
	return router
}

// TestReadArticles 列表响应使用统一分页信封
func TestReadArticles(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articles := []*model.Article{{ID: 1, Contents: "hello"}}
	articleSvc.On("Read", 2, model.Pagination{Page: 1, Limit: 10}, model.ArticleFilter{}).
		Return(articles, 11, nil)

	req, _ := http.NewRequest("GET", "/articles?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int `json:"code"`
		Data struct {
			List        []json.RawMessage `json:"list"`
			Count       int               `json:"count"`
			CurrentPage int               `json:"currentPage"`
			TotalPage   int               `json:"totalPage"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.Equal(t, 11, response.Data.Count)
	assert.Equal(t, 1, response.Data.CurrentPage)
	assert.Equal(t, 2, response.Data.TotalPage)
	assert.Len(t, response.Data.List, 1)
	articleSvc.AssertExpectations(t)
}

// TestReadArticlesWithSearch 搜索关键字透传到服务层
func TestReadArticlesWithSearch(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	var captured model.ArticleFilter
	articleSvc.On("Read", 2, model.Pagination{Page: 1, Limit: 10}, mock.AnythingOfType("model.ArticleFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(model.ArticleFilter)
		}).
		Return([]*model.Article{}, 0, nil)

	req, _ := http.NewRequest("GET", "/articles?page=1&limit=10&searchKeyword=Hello", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello", captured.SearchKeyword)
	articleSvc.AssertExpectations(t)
}

// TestReadNoReply 未回复列表走 NoReplyOnly 过滤
func TestReadNoReply(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	filter := model.ArticleFilter{NoReplyOnly: true}
	articleSvc.On("Read", 2, model.Pagination{Page: 1, Limit: 10}, filter).
		Return([]*model.Article{}, 0, nil)

	req, _ := http.NewRequest("GET", "/articles/no-reply?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	articleSvc.AssertExpectations(t)
}

// TestGetOneNotFound 文章不存在时映射为404
func TestGetOneNotFound(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articleSvc.On("GetOneDetailArticle", 2, 99).
		Return(nil, errors.New(errors.ErrArticleNotFound, "article not found"))

	req, _ := http.NewRequest("GET", "/articles/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response struct {
		Code int `json:"code"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int(errors.ErrArticleNotFound), response.Code)
}

// TestWriteArticle 创建文章返回成功信封
func TestWriteArticle(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articleSvc.On("Write", 2, mock.AnythingOfType("model.CreateArticle")).
		Return(&model.Article{ID: 5, Contents: "hello"}, nil)

	body := []byte(`{"type": "writing", "contents": "hello"}`)
	req, _ := http.NewRequest("POST", "/articles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int           `json:"code"`
		Data model.Article `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.Equal(t, 5, response.Data.ID)
}

// TestModifyForbidden 非作者修改映射为403
func TestModifyForbidden(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articleSvc.On("Modify", 2, 7, mock.AnythingOfType("model.UpdateArticle")).
		Return(nil, errors.New(errors.ErrNotWriter, "only the writer can modify this article"))

	body := []byte(`{"contents": "changed"}`)
	req, _ := http.NewRequest("PUT", "/articles/7", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestLikeOrUnlikeArticle 点赞开关回显状态
func TestLikeOrUnlikeArticle(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articleSvc.On("LikeOrUnlike", 2, 7).Return(true, nil)

	req, _ := http.NewRequest("PATCH", "/articles/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int `json:"code"`
		Data struct {
			MyPick bool `json:"myPick"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.True(t, response.Data.MyPick)
}

// TestReportConflict 重复举报映射为409
func TestReportConflict(t *testing.T) {
	articleSvc := new(MockArticleService)
	router := setupRouter(articleSvc, new(MockCommentService))

	articleSvc.On("Report", 2, 7, "spam").
		Return(errors.New(errors.ErrAlreadyReported, "article already reported by this user"))

	body := []byte(`{"reason": "spam"}`)
	req, _ := http.NewRequest("POST", "/articles/7/reports", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestWriteCommentSuppressed 下架文章的评论映射为403
func TestWriteCommentSuppressed(t *testing.T) {
	commentSvc := new(MockCommentService)
	router := setupRouter(new(MockArticleService), commentSvc)

	commentSvc.On("Write", 2, 7, mock.AnythingOfType("model.CreateComment")).
		Return(nil, errors.New(errors.ErrTooManyReports, "article suppressed by reports"))

	body := []byte(`{"contents": "hi"}`)
	req, _ := http.NewRequest("POST", "/articles/7/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestWriteComment 创建评论回显 imageId/parentId
func TestWriteComment(t *testing.T) {
	commentSvc := new(MockCommentService)
	router := setupRouter(new(MockArticleService), commentSvc)

	imageID, parentID := 4, 9
	commentSvc.On("Write", 2, 7, mock.AnythingOfType("model.CreateComment")).
		Return(&model.Comment{ID: 12, ArticleID: 7, ImageID: &imageID, ParentID: &parentID}, nil)

	body := []byte(`{"contents": "hi", "imageId": 4, "parentId": 9}`)
	req, _ := http.NewRequest("POST", "/articles/7/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int           `json:"code"`
		Data model.Comment `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.Equal(t, 4, *response.Data.ImageID)
	assert.Equal(t, 9, *response.Data.ParentID)
}

// TestCommentLikeOrUnlike 评论点赞开关
func TestCommentLikeOrUnlike(t *testing.T) {
	commentSvc := new(MockCommentService)
	router := setupRouter(new(MockArticleService), commentSvc)

	commentSvc.On("LikeOrUnlike", 2, 7, 33).Return(false, nil)

	req, _ := http.NewRequest("PATCH", "/articles/7/comments/33", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Code int `json:"code"`
		Data struct {
			MyPick bool `json:"myPick"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1000, response.Code)
	assert.False(t, response.Data.MyPick)
}
