package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type LessonInput struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
}

// POST /api/courses/:id/lessons
func CreateLesson(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationLessonAccessByCourse(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	lesson := models.Lesson{
		CourseID:   courseID,
		Title:      input.Title,
		Content:    input.Content,
		OrderIndex: input.OrderIndex,
	}

	if err := db.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo bài học"})
		return
	}

	// Thêm bài học có thể làm khóa học đủ điều kiện mở
	if err := refreshCourseAvailable(db, courseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái khóa học"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo bài học thành công",
		"lesson":  lesson,
	})
}

// GET /api/courses/:id/lessons
func GetLessonsByCourse(c *gin.Context) {
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
	if err := validator.CourseAccess(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var lessons []models.Lesson
	if err := db.Where("course_id = ?", courseID).Order("order_index ASC").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bài học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GET /api/lessons/:id
func GetLessonByID(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.LessonAccess(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.Preload("Test").First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// PUT /api/lessons/:id
func UpdateLesson(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationLessonAccess(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	lesson.Title = input.Title
	lesson.Content = input.Content
	lesson.OrderIndex = input.OrderIndex

	if err := db.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật bài học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật bài học thành công",
		"lesson":  lesson,
	})
}

// DELETE /api/lessons/:id
func DeleteLesson(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationLessonAccess(p, lessonID); err != nil {
		respondError(c, err)
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài học"})
		return
	}

	if err := db.Delete(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bài học"})
		return
	}

	// Bớt bài học có thể làm khóa học không còn đủ điều kiện mở
	if err := refreshCourseAvailable(db, lesson.CourseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa bài học thành công"})
}

type ReplaceLessonItem struct {
	ID         *uuid.UUID `json:"id"`
	Title      string     `json:"title" binding:"required"`
	Content    string     `json:"content"`
	OrderIndex int        `json:"order_index"`
}

type ReplaceLessonsInput struct {
	Lessons []ReplaceLessonItem `json:"lessons" binding:"required"`
}

// PUT /api/courses/:id/lessons
// Thay toàn bộ danh sách bài học của khóa học: bài không còn trong
// danh sách sẽ bị xóa, bài có id được cập nhật, bài mới được tạo
func ReplaceLessonsForCourse(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ReplaceLessonsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationLessonAccessByCourse(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	keepIDs := make([]uuid.UUID, 0, len(input.Lessons))
	for _, item := range input.Lessons {
		if item.ID != nil {
			keepIDs = append(keepIDs, *item.ID)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("course_id = ?", courseID)
		if len(keepIDs) > 0 {
			q = q.Where("id NOT IN ?", keepIDs)
		}
		if err := q.Delete(&models.Lesson{}).Error; err != nil {
			return err
		}

		for _, item := range input.Lessons {
			if item.ID != nil {
				result := tx.Model(&models.Lesson{}).
					Where("id = ? AND course_id = ?", *item.ID, courseID).
					Updates(map[string]interface{}{
						"title":       item.Title,
						"content":     item.Content,
						"order_index": item.OrderIndex,
					})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return models.NewNotFoundError("Bài học không thuộc khóa học này")
				}
				continue
			}

			lesson := models.Lesson{
				CourseID:   courseID,
				Title:      item.Title,
				Content:    item.Content,
				OrderIndex: item.OrderIndex,
			}
			if err := tx.Create(&lesson).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := refreshCourseAvailable(db, courseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái khóa học"})
		return
	}

	var lessons []models.Lesson
	db.Where("course_id = ?", courseID).Order("order_index ASC").Find(&lessons)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật danh sách bài học thành công",
		"lessons": lessons,
	})
}
