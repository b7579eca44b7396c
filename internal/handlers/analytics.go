package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

type SubmitterCount struct {
	SubmitterID uint   `json:"submitter_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Count       int64  `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Analytics recomputes the dashboard aggregates on every request.
func Analytics(ctx *gin.Context) {
	var total, pending, approved, rejected int64

	counts := []struct {
		dest   *int64
		status types.ContentStatus
	}{
		{&pending, types.StatusPending},
		{&approved, types.StatusApproved},
		{&rejected, types.StatusRejected},
	}

	if err := db.DB.Model(&models.Content{}).Count(&total).Error; err != nil {
		zap.L().Error("Failed to count content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, c := range counts {
		if err := db.DB.Model(&models.Content{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			zap.L().Error("Failed to count content by status", zap.String("status", string(c.status)), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	var topSubmitters []SubmitterCount

	err := db.DB.Model(&models.Content{}).
		Select("contents.submitter_id, users.name, users.email, COUNT(*) AS count").
		Joins("JOIN users ON users.id = contents.submitter_id").
		Group("contents.submitter_id, users.name, users.email").
		Order("count DESC").
		Limit(10).
		Scan(&topSubmitters).Error

	if err != nil {
		zap.L().Error("Failed to aggregate top submitters", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Unwind the JSONB tags array before grouping.
	var topTags []TagCount

	err = db.DB.Raw(`
		SELECT t.tag AS tag, COUNT(*) AS count
		FROM contents, jsonb_array_elements_text(contents.tags) AS t(tag)
		WHERE contents.deleted_at IS NULL
		GROUP BY t.tag
		ORDER BY count DESC
		LIMIT 10
	`).Scan(&topTags).Error

	if err != nil {
		zap.L().Error("Failed to aggregate top tags", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if topSubmitters == nil {
		topSubmitters = []SubmitterCount{}
	}

	if topTags == nil {
		topTags = []TagCount{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total":          total,
		"pending":        pending,
		"approved":       approved,
		"rejected":       rejected,
		"top_submitters": topSubmitters,
		"top_tags":       topTags,
	})
}
