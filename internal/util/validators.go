package util

import (
	"artshare-backend/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidateArticleType 校验文章类型字段
func ValidateArticleType(fl validator.FieldLevel) bool {
	return model.ArticleType(fl.Field().String()).Valid()
}
