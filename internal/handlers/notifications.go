package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	ContentID uint      `json:"content_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func ListNotifications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pagination := utils.GetPagination(ctx)

	query := db.DB.Model(&models.Notification{}).Where("user_id = ?", currentUser.ID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("Failed to count notifications", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var notifications []models.Notification

	if err := query.Order("created_at DESC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&notifications).Error; err != nil {
		zap.L().Error("Failed to list notifications", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))

	for _, notification := range notifications {
		response = append(response, NotificationResponse{
			ID:        notification.ID,
			ContentID: notification.ContentID,
			Title:     notification.Title,
			Message:   notification.Message,
			Type:      notification.Type,
			Status:    notification.Status,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": response,
		"total":         total,
		"page":          pagination.Page,
		"pages":         utils.PageCount(total, pagination.Limit),
	})
}

func MarkNotificationRead(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification

	if err := db.DB.Where("id = ? AND user_id = ?", uint(notificationID), currentUser.ID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		zap.L().Error("Failed to fetch notification", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&notification).Update("read", true).Error; err != nil {
		zap.L().Error("Failed to mark notification read", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
