package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type TestInput struct {
	Title string `json:"title" binding:"required"`
}

// refreshTestAvailable tính lại cột available từ số câu hỏi trong DB
func refreshTestAvailable(db *gorm.DB, testID uuid.UUID) error {
	var questionCount int64
	if err := db.Model(&models.Question{}).Where("test_id = ?", testID).Count(&questionCount).Error; err != nil {
		return err
	}

	available := questionCount >= int64(models.MinQuestions) && questionCount <= int64(models.MaxQuestions)
	return db.Model(&models.Test{}).Where("id = ?", testID).Update("available", available).Error
}

// POST /api/lessons/:id/test
// Mỗi bài học chỉ có một bài kiểm tra
func CreateTestForLesson(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input TestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationTestAccessByLesson(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	var existing int64
	db.Model(&models.Test{}).Where("lesson_id = ?", lessonID).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Bài học này đã có bài kiểm tra rồi"})
		return
	}

	test := models.Test{
		CourseID: lesson.CourseID,
		LessonID: lessonID,
		Title:    input.Title,
	}

	if err := db.Create(&test).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo bài kiểm tra"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo bài kiểm tra thành công",
		"test":    test,
	})
}

// GET /api/tests/:id
func GetTestByID(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.TestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	var test models.Test
	if err := db.Preload("Questions.Options").First(&test, "id = ?", testID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài kiểm tra"})
		return
	}
	test.SortQuestions()

	// Không lộ đáp án đúng cho học viên
	if p.Role == models.RoleStudent {
		for i := range test.Questions {
			for j := range test.Questions[i].Options {
				test.Questions[i].Options[j].Correct = false
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"test": test})
}

// PUT /api/tests/:id
func UpdateTest(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input TestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationTestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	var test models.Test
	if err := db.First(&test, "id = ?", testID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài kiểm tra"})
		return
	}

	test.Title = input.Title
	if err := db.Save(&test).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật bài kiểm tra"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật bài kiểm tra thành công",
		"test":    test,
	})
}

// DELETE /api/tests/:id
func DeleteTest(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationTestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	var test models.Test
	if err := db.First(&test, "id = ?", testID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài kiểm tra"})
		return
	}

	if err := db.Delete(&test).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bài kiểm tra"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa bài kiểm tra thành công"})
}

type CompleteTestInput struct {
	Results []services.QuestionResult `json:"results" binding:"required"`
}

// POST /api/tests/:id/complete
// Học viên nộp bài, hệ thống chấm và lưu kết quả lần gần nhất
func CompleteTest(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Role != models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chỉ học viên mới được làm bài kiểm tra"})
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CompleteTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.TestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	attempt, err := services.NewTestEvaluationService(db).CompleteTest(p.ID, testID, input.Results)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Nộp bài thành công",
		"attempt": attempt,
	})
}

// GET /api/tests/:id/result?student_id=
func GetTestResult(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.TestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	studentID := p.ID
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "student_id không hợp lệ"})
			return
		}
		if p.Role == models.RoleStudent && parsed != p.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Sai mã học viên"})
			return
		}
		studentID = parsed
	} else if p.Role != models.RoleStudent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu student_id"})
		return
	}

	attempt, err := services.NewTestEvaluationService(db).FindAttempt(studentID, testID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempt": attempt})
}
