package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessCode 是所有成功响应的业务码
const SuccessCode = 1000

// PaginationForm 分页响应的数据结构
type PaginationForm struct {
	List        interface{} `json:"list"`
	Count       int         `json:"count"`
	CurrentPage int         `json:"currentPage"`
	TotalPage   int         `json:"totalPage"`
}

// CreateResponseForm 返回统一的成功响应 {code: 1000, data: ...}
func CreateResponseForm(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": SuccessCode,
		"data": data,
	})
}

// CreatePaginationForm 返回统一的分页响应
func CreatePaginationForm(c *gin.Context, list interface{}, count, page, limit int) {
	totalPage := 0
	if limit > 0 {
		totalPage = (count + limit - 1) / limit
	}
	CreateResponseForm(c, PaginationForm{
		List:        list,
		Count:       count,
		CurrentPage: page,
		TotalPage:   totalPage,
	})
}
