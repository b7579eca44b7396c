package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type UpdatePreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications" binding:"required"`
	PushNotifications  *bool `json:"push_notifications" binding:"required"`
}

type PreferencesResponse struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
}

func GetPreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var preferences models.UserPreferences

	err = db.DB.Where("user_id = ?", currentUser.ID).First(&preferences).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Both channels default on until the user opts out.
		ctx.JSON(http.StatusOK, PreferencesResponse{EmailNotifications: true, PushNotifications: true})
		return
	}

	if err != nil {
		zap.L().Error("Failed to fetch preferences", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, PreferencesResponse{
		EmailNotifications: preferences.EmailNotifications,
		PushNotifications:  preferences.PushNotifications,
	})
}

func UpdatePreferences(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdatePreferencesRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	preferences := models.UserPreferences{
		UserID:             currentUser.ID,
		EmailNotifications: *req.EmailNotifications,
		PushNotifications:  *req.PushNotifications,
	}

	err = db.DB.Where("user_id = ?", currentUser.ID).
		Assign(map[string]interface{}{
			"email_notifications": *req.EmailNotifications,
			"push_notifications":  *req.PushNotifications,
		}).
		FirstOrCreate(&preferences).Error

	if err != nil {
		zap.L().Error("Failed to update preferences", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, PreferencesResponse{
		EmailNotifications: *req.EmailNotifications,
		PushNotifications:  *req.PushNotifications,
	})
}
