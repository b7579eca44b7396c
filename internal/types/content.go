package types

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleSubmitter Role = "SUBMITTER"
	RoleReviewer  Role = "REVIEWER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

type ContentType string

const (
	ContentTypeText  ContentType = "TEXT"
	ContentTypeImage ContentType = "IMAGE"
	ContentTypeURL   ContentType = "URL"
	ContentTypeVideo ContentType = "VIDEO"
)

type ContentStatus string

const (
	StatusPending     ContentStatus = "PENDING"
	StatusUnderReview ContentStatus = "UNDER_REVIEW"
	StatusApproved    ContentStatus = "APPROVED"
	StatusRejected    ContentStatus = "REJECTED"
	StatusEscalated   ContentStatus = "ESCALATED"
	StatusArchived    ContentStatus = "ARCHIVED"
)

// Field limits for content submissions.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxTextContentLength = 10000
	MaxTagLength         = 50
	MaxTags              = 10
	MaxPriority          = 10
)

// statusTransitions is the allow-list of legal moderation moves.
// ARCHIVED is terminal.
var statusTransitions = map[ContentStatus][]ContentStatus{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected, StatusEscalated, StatusArchived},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusEscalated, StatusArchived},
	StatusEscalated:   {StatusApproved, StatusRejected, StatusArchived},
	StatusApproved:    {StatusArchived},
	StatusRejected:    {StatusArchived},
	StatusArchived:    {},
}

// CanTransition reports whether moving content from one status to another is allowed.
func CanTransition(from, to ContentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleSubmitter:
		return RoleSubmitter, nil
	case RoleReviewer:
		return RoleReviewer, nil
	case RoleModerator:
		return RoleModerator, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", errors.New("unknown role")
	}
}

func ParseContentType(value string) (ContentType, error) {
	switch ContentType(strings.ToUpper(strings.TrimSpace(value))) {
	case ContentTypeText:
		return ContentTypeText, nil
	case ContentTypeImage:
		return ContentTypeImage, nil
	case ContentTypeURL:
		return ContentTypeURL, nil
	case ContentTypeVideo:
		return ContentTypeVideo, nil
	default:
		return "", errors.New("unknown content type")
	}
}

func ParseStatus(value string) (ContentStatus, error) {
	switch ContentStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, nil
	case StatusUnderReview:
		return StatusUnderReview, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusEscalated:
		return StatusEscalated, nil
	case StatusArchived:
		return StatusArchived, nil
	default:
		return "", errors.New("unknown status")
	}
}

// ModerationAction maps queue actions to their target status.
var ModerationAction = map[string]ContentStatus{
	"approve":  StatusApproved,
	"reject":   StatusRejected,
	"escalate": StatusEscalated,
}
