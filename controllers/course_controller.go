package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type CreateCourseInput struct {
	Title         string      `json:"title" binding:"required"`
	Description   string      `json:"description"`
	InstructorIDs []uuid.UUID `json:"instructor_ids" binding:"required,min=1"`
}

type UpdateCourseInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// refreshCourseAvailable tính lại cột available từ số giảng viên
// và số bài học hiện có trong DB
func refreshCourseAvailable(db *gorm.DB, courseID uuid.UUID) error {
	var instructorCount, lessonCount int64
	if err := db.Table("course_instructors").Where("course_id = ?", courseID).Count(&instructorCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&lessonCount).Error; err != nil {
		return err
	}

	available := instructorCount >= 1 && lessonCount >= int64(models.MinLessonsRequired)
	return db.Model(&models.Course{}).Where("id = ?", courseID).Update("available", available).Error
}

// POST /api/courses
func CreateCourse(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))

	// Giảng viên tạo khóa học phải tự phân công mình
	if err := validator.CourseAccessByInstructorIDs(p, input.InstructorIDs); err != nil {
		respondError(c, err)
		return
	}

	// Kiểm tra trùng tên
	var count int64
	db.Model(&models.Course{}).Where("LOWER(title) = LOWER(?)", input.Title).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Tên khóa học đã tồn tại"})
		return
	}

	// Mọi id trong danh sách phải là giảng viên thật
	var instructors []models.User
	if err := db.Where("id IN ? AND role = ?", input.InstructorIDs, models.RoleInstructor).Find(&instructors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tra cứu giảng viên"})
		return
	}
	if len(instructors) != len(input.InstructorIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Danh sách giảng viên chứa id không hợp lệ"})
		return
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		Slug:        slug.Make(input.Title),
		Instructors: instructors,
	}

	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo khóa học"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo khóa học thành công",
		"course":  course,
	})
}

// GET /api/courses?page=&limit=
func GetCourses(c *gin.Context) {
	db := getDB(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	db.Model(&models.Course{}).Count(&total)

	var courses []models.Course
	if err := db.Preload("Instructors").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses": courses,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}

// GET /api/courses/:id
func GetCourseByID(c *gin.Context) {
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

	var course models.Course
	if err := db.Preload("Lessons").Preload("Instructors").First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// GET /api/my-courses
func GetMyCourses(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	db := getDB(c)
	var courses []models.Course

	switch p.Role {
	case models.RoleInstructor:
		err = db.Joins("JOIN course_instructors ci ON ci.course_id = courses.id").
			Where("ci.user_id = ?", p.ID).
			Find(&courses).Error
	case models.RoleStudent:
		err = db.Joins("JOIN course_students cs ON cs.course_id = courses.id").
			Where("cs.user_id = ?", p.ID).
			Find(&courses).Error
	case models.RoleAdmin:
		// Admin xem được tất cả khóa học
		err = db.Find(&courses).Error
	default:
		// Vai trò lạ thì từ chối thay vì trả về danh sách rộng nhất
		c.JSON(http.StatusForbidden, gin.H{"error": "Vai trò người dùng không hợp lệ"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// PUT /api/courses/:id
func UpdateCourse(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationCourseAccess(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Slug = slug.Make(input.Title)

	if err := db.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật khóa học thành công",
		"course":  course,
	})
}

// DELETE /api/courses/:id
// Gỡ toàn bộ học viên và giảng viên khỏi khóa học trước khi xóa
func DeleteCourse(c *gin.Context) {
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
	if err := validator.ModificationCourseAccess(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&course).Association("Students").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&course).Association("Instructors").Clear(); err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa khóa học thành công"})
}

// POST /api/courses/:id/enroll
func EnrollCourse(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Role != models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chỉ học viên mới được đăng ký khóa học"})
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}
	if !course.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Khóa học chưa được mở"})
		return
	}

	var enrolled int64
	db.Table("course_students").Where("course_id = ? AND user_id = ?", courseID, p.ID).Count(&enrolled)
	if enrolled > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Học viên đã đăng ký khóa học này rồi"})
		return
	}

	// Giới hạn số khóa học mỗi học viên
	var enrolledTotal int64
	db.Table("course_students").Where("user_id = ?", p.ID).Count(&enrolledTotal)
	if enrolledTotal >= int64(models.MaxCoursesPerStudent) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Học viên chỉ được đăng ký tối đa " + strconv.Itoa(models.MaxCoursesPerStudent) + " khóa học",
		})
		return
	}

	student := models.User{ID: p.ID}
	if err := db.Model(&course).Association("Students").Append(&student); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đăng ký khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đăng ký khóa học thành công"})
}

type AddStudentInput struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

// POST /api/courses/:id/students
// Admin ghi danh hộ một học viên, vẫn áp dụng giới hạn 5 khóa học
func AddStudentToCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AddStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}
	if !course.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Khóa học chưa được mở"})
		return
	}

	var student models.User
	if err := db.First(&student, "id = ? AND role = ?", input.StudentID, models.RoleStudent).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy học viên"})
		return
	}

	var enrolled int64
	db.Table("course_students").Where("course_id = ? AND user_id = ?", courseID, student.ID).Count(&enrolled)
	if enrolled > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Học viên đã đăng ký khóa học này rồi"})
		return
	}

	var enrolledTotal int64
	db.Table("course_students").Where("user_id = ?", student.ID).Count(&enrolledTotal)
	if enrolledTotal >= int64(models.MaxCoursesPerStudent) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Học viên chỉ được đăng ký tối đa " + strconv.Itoa(models.MaxCoursesPerStudent) + " khóa học",
		})
		return
	}

	if err := db.Model(&course).Association("Students").Append(&student); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi danh học viên"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ghi danh học viên thành công"})
}

// DELETE /api/courses/:id/enroll
func LeaveCourse(c *gin.Context) {
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

	var enrolled int64
	db.Table("course_students").Where("course_id = ? AND user_id = ?", courseID, p.ID).Count(&enrolled)
	if enrolled == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Học viên chưa đăng ký khóa học này"})
		return
	}

	course := models.Course{ID: courseID}
	student := models.User{ID: p.ID}
	if err := db.Model(&course).Association("Students").Delete(&student); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể hủy đăng ký"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hủy đăng ký khóa học thành công"})
}

type AddInstructorsInput struct {
	InstructorIDs []uuid.UUID `json:"instructor_ids" binding:"required,min=1"`
}

// POST /api/courses/:id/instructors
func AddInstructors(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AddInstructorsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationCourseAccess(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var course models.Course
	if err := db.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy khóa học"})
		return
	}

	var instructors []models.User
	if err := db.Where("id IN ? AND role = ?", input.InstructorIDs, models.RoleInstructor).Find(&instructors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tra cứu giảng viên"})
		return
	}
	if len(instructors) != len(input.InstructorIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Danh sách giảng viên chứa id không hợp lệ"})
		return
	}

	var assigned int64
	db.Table("course_instructors").
		Where("course_id = ? AND user_id IN ?", courseID, input.InstructorIDs).
		Count(&assigned)
	if assigned > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Giảng viên đã được phân công vào khóa học này rồi"})
		return
	}

	if err := db.Model(&course).Association("Instructors").Append(&instructors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể phân công giảng viên"})
		return
	}

	if err := refreshCourseAvailable(db, courseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phân công giảng viên thành công"})
}

// DELETE /api/courses/:id/instructors/:instructorId
func RemoveInstructor(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	instructorID, ok := parseIDParam(c, "instructorId")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationCourseAccess(p, courseID); err != nil {
		respondError(c, err)
		return
	}

	var assigned int64
	db.Table("course_instructors").Where("course_id = ? AND user_id = ?", courseID, instructorID).Count(&assigned)
	if assigned == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Giảng viên không thuộc khóa học này"})
		return
	}

	course := models.Course{ID: courseID}
	instructor := models.User{ID: instructorID}
	if err := db.Model(&course).Association("Instructors").Delete(&instructor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể gỡ giảng viên"})
		return
	}

	if err := refreshCourseAvailable(db, courseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái khóa học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gỡ giảng viên thành công"})
}

// GET /api/courses/:id/status?student_id=
// Học viên xem trạng thái của mình, giảng viên và admin chỉ định học viên
func GetCourseStatus(c *gin.Context) {
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

	studentID := p.ID
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "student_id không hợp lệ"})
			return
		}
		// Học viên không được xem trạng thái của người khác
		if p.Role == models.RoleStudent && parsed != p.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Sai mã học viên"})
			return
		}
		studentID = parsed
	} else if p.Role != models.RoleStudent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu student_id"})
		return
	}

	result, err := services.NewCourseStatusService(db).StatusFor(courseID, studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
