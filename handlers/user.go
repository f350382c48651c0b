package handlers

import (
	"errors"
	"net/http"

	userRepo "innroutes/database/repository/user"
	"innroutes/services/auth"
	"innroutes/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes the current user's profile.
type UserHandler struct {
	Auth    auth.AuthService
	Users   userRepo.UserRepository
	Storage storage.StorageService
}

// GetCurrentUserHandler handles GET /api/users/me.
func (h *UserHandler) GetCurrentUserHandler(c *gin.Context) {
	userID := c.GetString("userID")
	user, err := h.Auth.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("failed to fetch current user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfileHandler handles PATCH /api/users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Auth.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		getLogger(c).Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatarHandler handles PUT /api/users/me/avatar with a multipart
// "avatar" file. The stored URL is saved on the user record.
func (h *UserHandler) UploadAvatarHandler(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Avatar storage is not configured"})
		return
	}
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing avatar file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read avatar file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		getLogger(c).Error("avatar upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Avatar upload failed"})
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.AvatarURL = url
	if err := h.Users.Update(user); err != nil {
		getLogger(c).Error("failed to save avatar URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

// RegisterFCMTokenHandler handles PUT /api/users/me/fcm-token. The token
// is where login codes and trip reminders get pushed.
func (h *UserHandler) RegisterFCMTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.FCMToken = req.FCMToken
	if err := h.Users.Update(user); err != nil {
		getLogger(c).Error("failed to save FCM token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not register device"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}
