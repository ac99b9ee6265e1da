package user

import (
	"artshare-backend/internal/errors"
	"artshare-backend/internal/service"
	"artshare-backend/internal/storage"
	"artshare-backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService service.UserServiceInterface
	storage     storage.Storage
}

func NewProfileHandler(userService service.UserServiceInterface, storage storage.Storage) *ProfileHandler {
	return &ProfileHandler{userService, storage}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		util.Logger.Error("获取用户资料失败", zap.Error(err))
		if appErr, ok := err.(*errors.AppError); ok {
			errors.HandleError(c, appErr)
			return
		}
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取用户资料失败", err))
		return
	}

	util.CreateResponseForm(c, gin.H{
		"user": user,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	currentUser, err := h.userService.GetUserByID(userID)
	if err != nil {
		util.Logger.Error("获取用户信息失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrUserNotFound, "获取用户信息失败", err))
		return
	}

	var updateData struct {
		Nickname string `json:"nickname"`
		Bio      string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		util.Logger.Warn("更新用户资料失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	// 只更新允许用户修改的字段
	if updateData.Nickname != "" {
		currentUser.Nickname = updateData.Nickname
	}
	if updateData.Bio != "" {
		currentUser.Bio = updateData.Bio
	}

	if err := h.userService.UpdateUser(currentUser); err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户资料失败", err))
		return
	}

	util.CreateResponseForm(c, gin.H{
		"user": currentUser,
	})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("avatars/%d/%s", userID, filename)

	avatarURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传头像失败", err))
		return
	}

	if err := h.userService.UpdateAvatar(userID, avatarURL); err != nil {
		util.Logger.Error("更新用户头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户头像失败", err))
		return
	}

	util.CreateResponseForm(c, gin.H{
		"profileImage": avatarURL,
	})
}
