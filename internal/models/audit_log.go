package models

import "time"

// AuditLog rows are append-only; there is no update path and no soft delete.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`

	EventID    string `gorm:"type:varchar(36);not null;uniqueIndex"`
	Action     string `gorm:"not null;index"`
	Target     string
	Actor      string `gorm:"not null"`
	ActorEmail string
	Details    string
}
