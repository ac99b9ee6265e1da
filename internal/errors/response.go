package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,
	ErrTooManyRequests:  http.StatusTooManyRequests,

	// 业务错误 (4000-4999)
	ErrUserNotFound:            http.StatusNotFound,
	ErrUserExists:              http.StatusConflict,
	ErrWeakPassword:            http.StatusBadRequest,
	ErrArticleNotFound:         http.StatusNotFound,
	ErrCommentNotFound:         http.StatusNotFound,
	ErrParentCommentNotFound:   http.StatusNotFound,
	ErrImageNotFound:           http.StatusNotFound,
	ErrNotWriter:               http.StatusForbidden,
	ErrSamePosition:            http.StatusBadRequest,
	ErrAlreadyReported:         http.StatusConflict,
	ErrTooManyReports:          http.StatusForbidden,
	ErrCommentPositionRequired: http.StatusBadRequest,

	// 系统错误 (5000-5999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrTimeout:  http.StatusRequestTimeout,
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		resp := ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Err != nil {
			resp.Error = appErr.Err.Error()
		}

		c.JSON(status, resp)
		return
	}

	// 处理非 AppError 类型的错误
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    ErrInternal,
		Message: "Internal Server Error",
		Error:   err.Error(),
	})
}
