package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
)

// MinSuccessGrade là điểm trung bình tối thiểu để hoàn thành khóa học
const MinSuccessGrade = 80

// CourseStatusResult là trạng thái khóa học của một học viên,
// FinalGrade chỉ có khi đã học xong toàn bộ bài học
type CourseStatusResult struct {
	Status     models.CourseStatus `json:"course_status"`
	FinalGrade *float64            `json:"final_grade,omitempty"`
}

// ComputeCourseStatus tính trạng thái từ số bài học và danh sách điểm đã chấm.
// Chưa đủ điểm cho mọi bài học thì đang học, đủ rồi thì lấy trung bình cộng:
// đạt ngưỡng là hoàn thành, dưới ngưỡng là trượt
func ComputeCourseStatus(lessonCount int, grades []float64) CourseStatusResult {
	if lessonCount == 0 || len(grades) < lessonCount {
		return CourseStatusResult{Status: models.CourseStatusInProgress}
	}

	sum := 0.0
	for _, grade := range grades {
		sum += grade
	}
	finalGrade := sum / float64(len(grades))

	status := models.CourseStatusFailed
	if finalGrade >= MinSuccessGrade {
		status = models.CourseStatusCompleted
	}
	return CourseStatusResult{Status: status, FinalGrade: &finalGrade}
}

type CourseStatusService struct {
	DB *gorm.DB
}

func NewCourseStatusService(db *gorm.DB) *CourseStatusService {
	return &CourseStatusService{DB: db}
}

// StatusFor tính trạng thái khóa học cho một học viên.
// Học viên phải đã đăng ký và khóa học phải đang mở
func (s *CourseStatusService) StatusFor(courseID, studentID uuid.UUID) (*CourseStatusResult, error) {
	var course models.Course
	err := s.DB.Preload("Lessons").First(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Không tìm thấy khóa học")
	}
	if err != nil {
		return nil, err
	}

	var enrolled int64
	if err := s.DB.Table("course_students").
		Where("course_id = ? AND user_id = ?", courseID, studentID).
		Count(&enrolled).Error; err != nil {
		return nil, err
	}
	if enrolled == 0 {
		return nil, models.NewValidationError("Học viên chưa đăng ký khóa học này")
	}

	if !course.Available {
		return nil, models.NewValidationError("Khóa học chưa được mở")
	}

	var grades []float64
	err = s.DB.Model(&models.Submission{}).
		Joins("JOIN lessons ON lessons.id = submissions.lesson_id").
		Where("lessons.course_id = ? AND submissions.student_id = ?", courseID, studentID).
		Pluck("submissions.grade", &grades).Error
	if err != nil {
		return nil, err
	}

	result := ComputeCourseStatus(len(course.Lessons), grades)
	return &result, nil
}
