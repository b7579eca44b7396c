package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Content struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Type        string `gorm:"not null;index"`
	TextContent string
	ImageURL    string
	VideoURL    string
	URL         string
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	Status      string         `gorm:"not null;default:PENDING;index"`
	Priority    int            `gorm:"not null;default:0"`
	SubmitterID uint           `gorm:"not null;index"`
	PublishedAt *time.Time

	// Relationships
	Submitter User `gorm:"foreignKey:SubmitterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// TagList decodes the stored JSONB tags array. A missing or malformed
// column yields an empty slice rather than an error.
func (c *Content) TagList() []string {
	if len(c.Tags) == 0 {
		return []string{}
	}

	var tags []string

	if err := json.Unmarshal(c.Tags, &tags); err != nil {
		return []string{}
	}

	return tags
}
