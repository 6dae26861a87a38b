package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type SaveSubmissionInput struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Grade     float64   `json:"grade" binding:"min=0,max=100"`
}

// POST /api/lessons/:id/submissions
// Giảng viên chấm điểm bài làm của học viên. Bài học có bài kiểm tra
// đang mở thì học viên phải vượt qua bài kiểm tra trước khi được chấm
func SaveSubmission(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input SaveSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationSubmissionAccess(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.Preload("Test").First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	// Học viên phải đã đăng ký khóa học chứa bài học
	queries := services.NewAccessQueries(db)
	enrolled, err := queries.LessonCourseWithStudent(lessonID, input.StudentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể kiểm tra đăng ký"})
		return
	}
	if !enrolled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Học viên chưa đăng ký khóa học này"})
		return
	}

	var attempt *models.TestAttempt
	if lesson.RequiresPassedTest() {
		var found models.TestAttempt
		err := db.First(&found, "student_id = ? AND test_id = ?", input.StudentID, lesson.Test.ID).Error
		if err == nil {
			attempt = &found
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể kiểm tra kết quả bài kiểm tra"})
			return
		}
	}

	if err := services.EnsureRequiredTestPassed(&lesson, attempt); err != nil {
		respondError(c, err)
		return
	}

	submission := models.Submission{
		StudentID: input.StudentID,
		LessonID:  lessonID,
		Grade:     input.Grade,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "updated_at"}),
	}).Create(&submission).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu điểm"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Chấm điểm thành công",
		"submission": submission,
	})
}

// GET /api/lessons/:id/submissions?student_id=
// Học viên chỉ xem được điểm của chính mình
func GetSubmissionsByLesson(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var studentID *uuid.UUID
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "student_id không hợp lệ"})
			return
		}
		studentID = &parsed
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.SubmissionAccess(p, lessonID, studentID); err != nil {
		respondError(c, err)
		return
	}

	query := db.Where("lesson_id = ?", lessonID)
	if p.Role == models.RoleStudent {
		query = query.Where("student_id = ?", p.ID)
	} else if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách điểm"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GET /api/my-submissions?course_id=
// Học viên xem toàn bộ điểm của mình, lọc được theo khóa học
func GetMySubmissions(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := getDB(c)
	query := db.Preload("Lesson").Where("submissions.student_id = ?", p.ID)

	if raw := c.Query("course_id"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "course_id không hợp lệ"})
			return
		}
		query = query.Joins("JOIN lessons ON lessons.id = submissions.lesson_id").
			Where("lessons.course_id = ?", courseID)
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách điểm"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// DELETE /api/lessons/:id/submissions/:studentId
func DeleteSubmission(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(c, "studentId")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationSubmissionAccess(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	result := db.Where("lesson_id = ? AND student_id = ?", lessonID, studentID).Delete(&models.Submission{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa điểm"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy điểm của học viên"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa điểm thành công"})
}
