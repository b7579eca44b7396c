package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/services"
	"github.com/gatekeep-dev/gatekeep/internal/types"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type ModerationActionRequest struct {
	ContentID uint   `json:"content_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// PendingQueue returns PENDING content ordered by priority, oldest first
// within the same priority.
func PendingQueue(ctx *gin.Context) {
	pagination := utils.GetPagination(ctx)

	query := db.DB.Model(&models.Content{}).Where("status = ?", types.StatusPending)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("Failed to count pending content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var items []models.Content

	if err := query.Order("priority DESC, created_at ASC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&items).Error; err != nil {
		zap.L().Error("Failed to list pending content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.ContentResponse, 0, len(items))

	for _, item := range items {
		response = append(response, toContentResponse(item))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": response,
		"total": total,
		"page":  pagination.Page,
		"pages": utils.PageCount(total, pagination.Limit),
	})
}

func ModerationAction(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ModerationActionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing content_id or action"})
		return
	}

	newStatus, ok := types.ModerationAction[req.Action]

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action type"})
		return
	}

	content, errStatus, errMessage := changeContentStatus(req.ContentID, newStatus)

	if errStatus != 0 {
		ctx.JSON(errStatus, gin.H{"error": errMessage})
		return
	}

	services.RecordAudit("moderation.action", strconv.FormatUint(uint64(content.ID), 10),
		currentUser.Name, currentUser.Email, fmt.Sprintf("Action %s applied", req.Action))

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
