package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"`
	ContentID uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Message   string `gorm:"not null"`
	Type      string `gorm:"not null;default:SUBMISSION"`
	Status    string `gorm:"not null;default:PENDING"`
	Read      bool   `gorm:"not null;default:false"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Content Content `gorm:"foreignKey:ContentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
