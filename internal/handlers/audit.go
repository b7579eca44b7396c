package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type AuditLogResponse struct {
	ID         uint      `json:"id"`
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	Target     string    `json:"target,omitempty"`
	Actor      string    `json:"actor"`
	ActorEmail string    `json:"actor_email,omitempty"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ListAuditLogs(ctx *gin.Context) {
	pagination := utils.GetPagination(ctx)

	var total int64

	if err := db.DB.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		zap.L().Error("Failed to count audit logs", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var logs []models.AuditLog

	if err := db.DB.Order("created_at DESC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&logs).Error; err != nil {
		zap.L().Error("Failed to list audit logs", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]AuditLogResponse, 0, len(logs))

	for _, entry := range logs {
		response = append(response, AuditLogResponse{
			ID:         entry.ID,
			EventID:    entry.EventID,
			Action:     entry.Action,
			Target:     entry.Target,
			Actor:      entry.Actor,
			ActorEmail: entry.ActorEmail,
			Details:    entry.Details,
			CreatedAt:  entry.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logs":  response,
		"total": total,
		"page":  pagination.Page,
		"pages": utils.PageCount(total, pagination.Limit),
	})
}
