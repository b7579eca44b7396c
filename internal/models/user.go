package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name          string `gorm:"not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string
	Role          string `gorm:"not null;default:SUBMITTER;index"`
	Image         string
	EmailVerified *time.Time

	// Relationships
	Submissions   []Content        `gorm:"foreignKey:SubmitterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Preferences   *UserPreferences `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
