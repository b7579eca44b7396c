package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/services"
	"github.com/gatekeep-dev/gatekeep/internal/types"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type SubmitContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	TextContent string   `json:"text_content"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

type UpdateContentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toContentResponse(content models.Content) types.ContentResponse {
	return types.ContentResponse{
		ID:          content.ID,
		Title:       content.Title,
		Description: content.Description,
		Type:        content.Type,
		TextContent: content.TextContent,
		ImageURL:    content.ImageURL,
		VideoURL:    content.VideoURL,
		URL:         content.URL,
		Tags:        content.TagList(),
		Status:      content.Status,
		Priority:    content.Priority,
		SubmitterID: content.SubmitterID,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
		PublishedAt: content.PublishedAt,
	}
}

// validateSubmission normalizes the request in place and returns
// field-level validation errors, empty when the submission is acceptable.
func validateSubmission(req *SubmitContentRequest) []types.ValidationErrorDetail {
	var details []types.ValidationErrorDetail

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.TextContent = strings.TrimSpace(req.TextContent)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	req.URL = strings.TrimSpace(req.URL)

	if req.Title == "" {
		details = append(details, types.ValidationErrorDetail{Path: "title", Message: "Title is required"})
	} else if len(req.Title) > types.MaxTitleLength {
		details = append(details, types.ValidationErrorDetail{
			Path:    "title",
			Message: fmt.Sprintf("Title must be at most %d characters", types.MaxTitleLength),
		})
	}

	if len(req.Description) > types.MaxDescriptionLength {
		details = append(details, types.ValidationErrorDetail{
			Path:    "description",
			Message: fmt.Sprintf("Description must be at most %d characters", types.MaxDescriptionLength),
		})
	}

	contentType, err := types.ParseContentType(req.Type)

	if err != nil {
		details = append(details, types.ValidationErrorDetail{Path: "type", Message: "Type must be one of TEXT, IMAGE, URL, VIDEO"})
		return details
	}

	req.Type = string(contentType)

	switch contentType {
	case types.ContentTypeText:
		if req.TextContent == "" {
			details = append(details, types.ValidationErrorDetail{Path: "text_content", Message: "Text content is required for TEXT type"})
		} else if len(req.TextContent) > types.MaxTextContentLength {
			details = append(details, types.ValidationErrorDetail{
				Path:    "text_content",
				Message: fmt.Sprintf("Text content must be at most %d characters", types.MaxTextContentLength),
			})
		}
	case types.ContentTypeImage:
		if req.ImageURL == "" {
			details = append(details, types.ValidationErrorDetail{Path: "image_url", Message: "Image URL is required for IMAGE type"})
		}
	case types.ContentTypeVideo:
		if req.VideoURL == "" {
			details = append(details, types.ValidationErrorDetail{Path: "video_url", Message: "Video URL is required for VIDEO type"})
		}
	case types.ContentTypeURL:
		if req.URL == "" {
			details = append(details, types.ValidationErrorDetail{Path: "url", Message: "URL is required for URL type"})
		}
	}

	var tags []string

	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > types.MaxTagLength {
			details = append(details, types.ValidationErrorDetail{
				Path:    "tags",
				Message: fmt.Sprintf("Tags must be at most %d characters", types.MaxTagLength),
			})
			continue
		}
		tags = append(tags, tag)
	}

	if len(tags) > types.MaxTags {
		details = append(details, types.ValidationErrorDetail{
			Path:    "tags",
			Message: fmt.Sprintf("At most %d tags are allowed", types.MaxTags),
		})
	}

	req.Tags = tags

	return details
}

func SubmitContent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitContentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if details := validateSubmission(&req); len(details) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": details})
		return
	}

	tagsJSON, err := json.Marshal(req.Tags)

	if err != nil {
		zap.L().Error("Failed to encode tags", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	content := models.Content{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		TextContent: req.TextContent,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		URL:         req.URL,
		Tags:        datatypes.JSON(tagsJSON),
		Status:      string(types.StatusPending),
		Priority:    0,
		SubmitterID: currentUser.ID,
	}

	if err := db.DB.Create(&content).Error; err != nil {
		zap.L().Error("Failed to create content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastContentEvent("submission", content.ID, content.Status)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Content submitted successfully",
		"content": toContentResponse(content),
	})
}

func ListContent(ctx *gin.Context) {
	pagination := utils.GetPagination(ctx)

	query := db.DB.Model(&models.Content{})

	if status := ctx.Query("status"); status != "" && status != "ALL" {
		parsed, err := types.ParseStatus(status)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}

		query = query.Where("status = ?", parsed)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("Failed to count content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var items []models.Content

	if err := query.Order("created_at DESC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&items).Error; err != nil {
		zap.L().Error("Failed to list content", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.ContentResponse, 0, len(items))

	for _, item := range items {
		response = append(response, toContentResponse(item))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": response,
		"total": total,
		"page":  pagination.Page,
		"pages": utils.PageCount(total, pagination.Limit),
	})
}

func MySubmissions(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pagination := utils.GetPagination(ctx)

	query := db.DB.Model(&models.Content{}).Where("submitter_id = ?", currentUser.ID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("Failed to count submissions", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var items []models.Content

	if err := query.Order("created_at DESC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&items).Error; err != nil {
		zap.L().Error("Failed to list submissions", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.ContentResponse, 0, len(items))

	for _, item := range items {
		response = append(response, toContentResponse(item))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": response,
		"total": total,
		"page":  pagination.Page,
		"pages": utils.PageCount(total, pagination.Limit),
	})
}

// changeContentStatus loads the record, checks the transition against the
// allow-list and applies the update. It returns a non-zero HTTP status and
// message when the change cannot be made.
func changeContentStatus(contentID uint, newStatus types.ContentStatus) (models.Content, int, string) {
	var content models.Content

	if err := db.DB.First(&content, contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Content{}, http.StatusNotFound, "Content not found"
		}
		zap.L().Error("Failed to fetch content", zap.Uint("content_id", contentID), zap.Error(err))
		return models.Content{}, http.StatusInternalServerError, "Internal server error"
	}

	if !types.CanTransition(types.ContentStatus(content.Status), newStatus) {
		return models.Content{}, http.StatusBadRequest,
			fmt.Sprintf("Cannot transition from %s to %s", content.Status, newStatus)
	}

	updates := map[string]interface{}{
		"status": string(newStatus),
	}

	if newStatus == types.StatusApproved {
		now := time.Now()
		updates["published_at"] = now
		content.PublishedAt = &now
	}

	if err := db.DB.Model(&content).Updates(updates).Error; err != nil {
		zap.L().Error("Failed to update content status", zap.Uint("content_id", contentID), zap.Error(err))
		return models.Content{}, http.StatusInternalServerError, "Internal server error"
	}

	content.Status = string(newStatus)

	services.NotifyModerationOutcome(content, newStatus)
	BroadcastContentEvent("moderation", content.ID, content.Status)

	return content, 0, ""
}

func UpdateContentStatus(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID"})
		return
	}

	var req UpdateContentStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	newStatus, err := types.ParseStatus(req.Status)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	content, errStatus, errMessage := changeContentStatus(uint(contentID), newStatus)

	if errStatus != 0 {
		ctx.JSON(errStatus, gin.H{"error": errMessage})
		return
	}

	services.RecordAudit("content.status", strconv.FormatUint(uint64(content.ID), 10),
		currentUser.Name, currentUser.Email, fmt.Sprintf("Status set to %s", newStatus))

	ctx.JSON(http.StatusOK, toContentResponse(content))
}
