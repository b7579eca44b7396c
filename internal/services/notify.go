package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

// NotifyModerationOutcome creates an in-app notification for the submitter
// when their content is approved or rejected. Other statuses are silent.
func NotifyModerationOutcome(content models.Content, status types.ContentStatus) {
	var notificationType, title, message string

	switch status {
	case types.StatusApproved:
		notificationType = "APPROVAL"
		title = "Content approved"
		message = fmt.Sprintf("Your submission %q has been approved and published.", content.Title)
	case types.StatusRejected:
		notificationType = "REJECTION"
		title = "Content rejected"
		message = fmt.Sprintf("Your submission %q has been rejected by a moderator.", content.Title)
	default:
		return
	}

	notification := models.Notification{
		UserID:    content.SubmitterID,
		ContentID: content.ID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		Status:    "RESOLVED",
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		zap.L().Error("Failed to create notification",
			zap.Uint("user_id", content.SubmitterID),
			zap.Uint("content_id", content.ID),
			zap.Error(err))
	}
}
