package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

// respondError map loại lỗi nghiệp vụ sang HTTP status tương ứng
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Lỗi hệ thống"

	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, models.ErrAccessRestricted):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

func getDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

// currentPrincipal đọc người dùng hiện tại từ context.
// Thiếu thông tin thì từ chối luôn thay vì cho qua
func currentPrincipal(c *gin.Context) (services.Principal, error) {
	userIDStr := c.GetString("user_id")
	roleStr := c.GetString("role")
	if userIDStr == "" || roleStr == "" {
		return services.Principal{}, models.NewAccessRestrictedError("Không xác định được người dùng hiện tại")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Principal{}, models.NewAccessRestrictedError("Không xác định được người dùng hiện tại")
	}

	return services.Principal{ID: userID, Role: models.UserRole(roleStr)}, nil
}

// parseIDParam đọc và kiểm tra uuid từ path param
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " không hợp lệ"})
		return uuid.Nil, false
	}
	return id, true
}
