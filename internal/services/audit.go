package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
)

// RecordAudit appends an entry to the audit log. Failures are logged but
// never surfaced to the caller; the action itself has already happened.
func RecordAudit(action, target, actor, actorEmail, details string) {
	entry := models.AuditLog{
		EventID:    uuid.NewString(),
		Action:     action,
		Target:     target,
		Actor:      actor,
		ActorEmail: actorEmail,
		Details:    details,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		zap.L().Error("Failed to write audit log entry",
			zap.String("action", action),
			zap.String("target", target),
			zap.Error(err))
	}
}
