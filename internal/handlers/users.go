package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/models"
	"github.com/gatekeep-dev/gatekeep/internal/services"
	"github.com/gatekeep-dev/gatekeep/internal/types"
	"github.com/gatekeep-dev/gatekeep/internal/utils"
)

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func ListUsers(ctx *gin.Context) {
	pagination := utils.GetPagination(ctx)

	var total int64

	if err := db.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		zap.L().Error("Failed to count users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var users []models.User

	if err := db.DB.Order("created_at DESC").Offset(pagination.Offset()).Limit(pagination.Limit).Find(&users).Error; err != nil {
		zap.L().Error("Failed to list users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, userResponse(user))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": response,
		"pagination": gin.H{
			"total": total,
			"page":  pagination.Page,
			"pages": utils.PageCount(total, pagination.Limit),
			"limit": pagination.Limit,
		},
	})
}

func UpdateUserRole(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	newRole, err := types.ParseRole(req.Role)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var target models.User

	if err := db.DB.First(&target, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		zap.L().Error("Failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Granting or revoking ADMIN is restricted to admins.
	touchesAdmin := newRole == types.RoleAdmin || target.Role == string(types.RoleAdmin)

	if touchesAdmin && currentUser.Role != string(types.RoleAdmin) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only admins can change admin roles"})
		return
	}

	if err := db.DB.Model(&target).Update("role", string(newRole)).Error; err != nil {
		zap.L().Error("Failed to update user role", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	target.Role = string(newRole)

	services.RecordAudit("user.role", target.Email, currentUser.Name, currentUser.Email,
		"Role set to "+string(newRole))

	ctx.JSON(http.StatusOK, userResponse(target))
}
