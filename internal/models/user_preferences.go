package models

import "gorm.io/gorm"

type UserPreferences struct {
	gorm.Model

	UserID             uint `gorm:"not null;uniqueIndex"`
	EmailNotifications bool `gorm:"not null;default:true"`
	PushNotifications  bool `gorm:"not null;default:true"`
}
