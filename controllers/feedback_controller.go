package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type FeedbackInput struct {
	Content string `json:"content" binding:"required"`
}

// POST /api/courses/:id/feedbacks
// Học viên đã đăng ký mới được viết phản hồi
func CreateFeedback(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Role != models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chỉ học viên mới được viết phản hồi"})
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.FeedbackAccessByCourse(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	feedback := models.Feedback{
		StudentID: p.ID,
		CourseID:  courseID,
		Content:   input.Content,
	}

	if err := db.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo phản hồi"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Gửi phản hồi thành công",
		"feedback": feedback,
	})
}

// GET /api/courses/:id/feedbacks
func GetFeedbacksByCourse(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.FeedbackAccessByCourse(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var feedbacks []models.Feedback
	if err := db.Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách phản hồi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// PUT /api/feedbacks/:id
// Chỉ admin hoặc chính học viên viết phản hồi được sửa
func UpdateFeedback(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationFeedbackAccess(p, feedbackID); err != nil {
		respondError(c, err)
		return
	}

	var feedback models.Feedback
	if err := db.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phản hồi"})
		return
	}

	feedback.Content = input.Content
	if err := db.Save(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật phản hồi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cập nhật phản hồi thành công",
		"feedback": feedback,
	})
}

// DELETE /api/feedbacks/:id
func DeleteFeedback(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationFeedbackAccess(p, feedbackID); err != nil {
		respondError(c, err)
		return
	}

	result := db.Where("id = ?", feedbackID).Delete(&models.Feedback{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa phản hồi"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phản hồi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa phản hồi thành công"})
}
