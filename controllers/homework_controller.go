package controllers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
	"github.com/tmnhat/learning-center-backend/utils"
)

// POST /api/lessons/:id/homeworks
// Học viên nộp file bài tập, file gốc đẩy lên Supabase Storage
func UploadHomework(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Role != models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chỉ học viên mới được nộp bài tập"})
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.HomeworkAccess(p, lessonID, nil); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu file bài tập"})
		return
	}

	fileName := filepath.Base(fileHeader.Filename)
	objectPath := utils.HomeworkObjectPath(lessonID.String(), p.ID.String(), fileName)

	if _, err := utils.UploadHomeworkToSupabase(fileHeader, objectPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể upload file bài tập"})
		return
	}

	homework := models.Homework{
		StudentID: p.ID,
		LessonID:  lessonID,
		FileName:  fileName,
		FilePath:  objectPath,
	}

	if err := db.Create(&homework).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu bài tập"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Nộp bài tập thành công",
		"homework": homework,
	})
}

// GET /api/lessons/:id/homeworks?student_id=
func GetHomeworksByLesson(c *gin.Context) {
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
	if err := validator.HomeworkAccess(p, lessonID, studentID); err != nil {
		respondError(c, err)
		return
	}

	query := db.Where("lesson_id = ?", lessonID)
	if p.Role == models.RoleStudent {
		query = query.Where("student_id = ?", p.ID)
	} else if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var homeworks []models.Homework
	if err := query.Find(&homeworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bài tập"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"homeworks": homeworks})
}

// GET /api/my-homeworks?course_id=
// Học viên xem toàn bộ bài tập đã nộp, lọc được theo khóa học
func GetMyHomeworks(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := getDB(c)
	query := db.Preload("Lesson").Where("homeworks.student_id = ?", p.ID)

	if raw := c.Query("course_id"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "course_id không hợp lệ"})
			return
		}
		query = query.Joins("JOIN lessons ON lessons.id = homeworks.lesson_id").
			Where("lessons.course_id = ?", courseID)
	}

	var homeworks []models.Homework
	if err := query.Find(&homeworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bài tập"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"homeworks": homeworks})
}

// GET /api/homeworks/:id
func GetHomeworkByID(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	homeworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.HomeworkAccessByID(p, homeworkID); err != nil {
		respondError(c, err)
		return
	}

	var homework models.Homework
	if err := db.Preload("Lesson").First(&homework, "id = ?", homeworkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"homework": homework})
}

// GET /api/homeworks/:id/link
// Trả về link tải tạm thời, hết hạn sau 24 giờ
func GetHomeworkLink(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	homeworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.HomeworkAccessByID(p, homeworkID); err != nil {
		respondError(c, err)
		return
	}

	var homework models.Homework
	if err := db.First(&homework, "id = ?", homeworkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
		return
	}

	link, err := utils.SignedHomeworkURL(homework.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo link tải"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":       link,
		"expires_in": utils.SignedLinkTTL,
	})
}

// GET /api/homeworks/:id/download
func DownloadHomework(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	homeworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.HomeworkAccessByID(p, homeworkID); err != nil {
		respondError(c, err)
		return
	}

	var homework models.Homework
	if err := db.First(&homework, "id = ?", homeworkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
		return
	}

	data, err := utils.DownloadHomeworkFromSupabase(homework.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải file bài tập"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+homework.FileName+"\"")
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// DELETE /api/homeworks/:id
// Xóa record và cả file trên storage
func DeleteHomework(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	homeworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.HomeworkAccessByID(p, homeworkID); err != nil {
		respondError(c, err)
		return
	}

	var homework models.Homework
	if err := db.First(&homework, "id = ?", homeworkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
		return
	}

	if err := db.Delete(&homework).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bài tập"})
		return
	}

	if err := utils.DeleteHomeworkFromSupabase(homework.FilePath); err != nil {
		log.Println("Xóa file bài tập trên Supabase thất bại:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa bài tập thành công"})
}
