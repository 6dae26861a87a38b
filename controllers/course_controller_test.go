package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
)

// Vai trò ngoài admin/instructor/student không được rơi vào nhánh xem tất cả
func TestGetMyCoursesTuChoiVaiTroLa(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("db", (*gorm.DB)(nil))
	c.Set("user_id", uuid.New().String())
	c.Set("role", "superuser")

	GetMyCourses(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Vai trò người dùng không hợp lệ")
}

func TestGetMyCoursesThieuNguoiDung(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("db", (*gorm.DB)(nil))
	c.Set("role", string(models.RoleStudent))

	GetMyCourses(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
