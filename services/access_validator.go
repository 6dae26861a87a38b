package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
)

// Principal là người dùng đã xác thực của request hiện tại,
// controller đọc từ context và truyền tường minh vào validator
type Principal struct {
	ID   uuid.UUID
	Role models.UserRole
}

// AccessQueries gom các truy vấn tồn tại mà validator cần,
// tách interface để test bằng fake không cần database
type AccessQueries interface {
	CourseWithStudent(courseID, studentID uuid.UUID) (bool, error)
	CourseWithInstructor(courseID, instructorID uuid.UUID) (bool, error)
	LessonCourseWithStudent(lessonID, studentID uuid.UUID) (bool, error)
	LessonCourseWithInstructor(lessonID, instructorID uuid.UUID) (bool, error)
	TestCourseWithStudent(testID, studentID uuid.UUID) (bool, error)
	TestCourseWithInstructor(testID, instructorID uuid.UUID) (bool, error)
	FeedbackOfStudent(feedbackID, studentID uuid.UUID) (bool, error)
	HomeworkOfStudent(homeworkID, studentID uuid.UUID) (bool, error)
	TestIDOfQuestion(questionID uuid.UUID) (uuid.UUID, error)
	LessonIDOfHomework(homeworkID uuid.UUID) (uuid.UUID, error)
}

type gormAccessQueries struct {
	db *gorm.DB
}

func NewAccessQueries(db *gorm.DB) AccessQueries {
	return &gormAccessQueries{db: db}
}

func (q *gormAccessQueries) CourseWithStudent(courseID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Table("course_students").
		Where("course_id = ? AND user_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) CourseWithInstructor(courseID, instructorID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Table("course_instructors").
		Where("course_id = ? AND user_id = ?", courseID, instructorID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) LessonCourseWithStudent(lessonID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Lesson{}).
		Joins("JOIN course_students cs ON cs.course_id = lessons.course_id").
		Where("lessons.id = ? AND cs.user_id = ?", lessonID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) LessonCourseWithInstructor(lessonID, instructorID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Lesson{}).
		Joins("JOIN course_instructors ci ON ci.course_id = lessons.course_id").
		Where("lessons.id = ? AND ci.user_id = ?", lessonID, instructorID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) TestCourseWithStudent(testID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Test{}).
		Joins("JOIN course_students cs ON cs.course_id = tests.course_id").
		Where("tests.id = ? AND cs.user_id = ?", testID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) TestCourseWithInstructor(testID, instructorID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Test{}).
		Joins("JOIN course_instructors ci ON ci.course_id = tests.course_id").
		Where("tests.id = ? AND ci.user_id = ?", testID, instructorID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) FeedbackOfStudent(feedbackID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Feedback{}).
		Where("id = ? AND student_id = ?", feedbackID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) HomeworkOfStudent(homeworkID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := q.db.Model(&models.Homework{}).
		Where("id = ? AND student_id = ?", homeworkID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (q *gormAccessQueries) TestIDOfQuestion(questionID uuid.UUID) (uuid.UUID, error) {
	var question models.Question
	err := q.db.Select("id", "test_id").First(&question, "id = ?", questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, models.NewNotFoundError("Không tìm thấy câu hỏi")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return question.TestID, nil
}

func (q *gormAccessQueries) LessonIDOfHomework(homeworkID uuid.UUID) (uuid.UUID, error) {
	var homework models.Homework
	err := q.db.Select("id", "lesson_id").First(&homework, "id = ?", homeworkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, models.NewNotFoundError("Không tìm thấy bài tập")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return homework.LessonID, nil
}

// AccessValidator kiểm tra quyền truy cập tài nguyên theo vai trò:
// admin đi qua mọi kiểm tra, giảng viên phải được phân công vào khóa học,
// học viên phải đã đăng ký khóa học
type AccessValidator struct {
	queries AccessQueries
}

func NewAccessValidator(queries AccessQueries) *AccessValidator {
	return &AccessValidator{queries: queries}
}

var (
	errInstructorNotAssigned = models.NewAccessRestrictedError("Giảng viên chưa được phân công vào khóa học này")
	errStudentNotEnrolled    = models.NewAccessRestrictedError("Học viên chưa đăng ký khóa học này")
	errUnknownPrincipal      = models.NewAccessRestrictedError("Không xác định được người dùng hiện tại")
	errNotResourceOwner      = models.NewAccessRestrictedError("Sai mã học viên")
	errModificationDenied    = models.NewAccessRestrictedError("Bạn không có quyền chỉnh sửa tài nguyên này")
)

func (v *AccessValidator) check(exists bool, err error, restricted error) error {
	if err != nil {
		return err
	}
	if !exists {
		return restricted
	}
	return nil
}

func (v *AccessValidator) CourseAccess(p Principal, courseID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.CourseWithInstructor(courseID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	case models.RoleStudent:
		ok, err := v.queries.CourseWithStudent(courseID, p.ID)
		return v.check(ok, err, errStudentNotEnrolled)
	default:
		return errUnknownPrincipal
	}
}

// CourseAccessByInstructorIDs kiểm tra quyền tạo khóa học với danh sách
// giảng viên được phân công: giảng viên phải tự đưa mình vào danh sách
func (v *AccessValidator) CourseAccessByInstructorIDs(p Principal, instructorIDs []uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		for _, id := range instructorIDs {
			if id == p.ID {
				return nil
			}
		}
		return models.NewAccessRestrictedError("Giảng viên phải tự phân công mình vào khóa học khi tạo")
	default:
		return errModificationDenied
	}
}

func (v *AccessValidator) ModificationCourseAccess(p Principal, courseID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.CourseWithInstructor(courseID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	default:
		return errModificationDenied
	}
}

func (v *AccessValidator) LessonAccess(p Principal, lessonID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.LessonCourseWithInstructor(lessonID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	case models.RoleStudent:
		ok, err := v.queries.LessonCourseWithStudent(lessonID, p.ID)
		return v.check(ok, err, errStudentNotEnrolled)
	default:
		return errUnknownPrincipal
	}
}

func (v *AccessValidator) ModificationLessonAccess(p Principal, lessonID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.LessonCourseWithInstructor(lessonID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	default:
		return errModificationDenied
	}
}

// ModificationLessonAccessByCourse dùng khi bài học chưa tồn tại,
// kiểm tra theo khóa học đích
func (v *AccessValidator) ModificationLessonAccessByCourse(p Principal, courseID uuid.UUID) error {
	return v.ModificationCourseAccess(p, courseID)
}

func (v *AccessValidator) TestAccess(p Principal, testID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.TestCourseWithInstructor(testID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	case models.RoleStudent:
		ok, err := v.queries.TestCourseWithStudent(testID, p.ID)
		return v.check(ok, err, errStudentNotEnrolled)
	default:
		return errUnknownPrincipal
	}
}

func (v *AccessValidator) ModificationTestAccess(p Principal, testID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.TestCourseWithInstructor(testID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	default:
		return errModificationDenied
	}
}

// ModificationTestAccessByLesson dùng khi tạo bài kiểm tra mới cho bài học
func (v *AccessValidator) ModificationTestAccessByLesson(p Principal, lessonID uuid.UUID) error {
	return v.ModificationLessonAccess(p, lessonID)
}

// QuestionAccess tra bài kiểm tra chứa câu hỏi rồi kiểm tra theo bài kiểm tra,
// câu hỏi không tồn tại trả lỗi not found
func (v *AccessValidator) QuestionAccess(p Principal, questionID uuid.UUID) error {
	testID, err := v.queries.TestIDOfQuestion(questionID)
	if err != nil {
		return err
	}
	return v.TestAccess(p, testID)
}

func (v *AccessValidator) ModificationQuestionAccess(p Principal, questionID uuid.UUID) error {
	testID, err := v.queries.TestIDOfQuestion(questionID)
	if err != nil {
		return err
	}
	return v.ModificationTestAccess(p, testID)
}

func (v *AccessValidator) FeedbackAccessByCourse(p Principal, courseID uuid.UUID) error {
	return v.CourseAccess(p, courseID)
}

// ModificationFeedbackAccess chỉ cho admin hoặc chính học viên viết phản hồi
func (v *AccessValidator) ModificationFeedbackAccess(p Principal, feedbackID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStudent:
		ok, err := v.queries.FeedbackOfStudent(feedbackID, p.ID)
		return v.check(ok, err, models.NewAccessRestrictedError("Chỉ được thao tác trên phản hồi của chính mình"))
	default:
		return errModificationDenied
	}
}

// HomeworkAccess kiểm tra quyền xem bài tập theo bài học.
// Học viên chỉ được xem bài tập của chính mình: nếu request chỉ định
// mã học viên khác với mã của mình thì từ chối
func (v *AccessValidator) HomeworkAccess(p Principal, lessonID uuid.UUID, studentID *uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		ok, err := v.queries.LessonCourseWithInstructor(lessonID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	case models.RoleStudent:
		if studentID != nil && *studentID != p.ID {
			return errNotResourceOwner
		}
		ok, err := v.queries.LessonCourseWithStudent(lessonID, p.ID)
		return v.check(ok, err, errStudentNotEnrolled)
	default:
		return errUnknownPrincipal
	}
}

func (v *AccessValidator) HomeworkAccessByID(p Principal, homeworkID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleInstructor:
		lessonID, err := v.queries.LessonIDOfHomework(homeworkID)
		if err != nil {
			return err
		}
		ok, err := v.queries.LessonCourseWithInstructor(lessonID, p.ID)
		return v.check(ok, err, errInstructorNotAssigned)
	case models.RoleStudent:
		ok, err := v.queries.HomeworkOfStudent(homeworkID, p.ID)
		return v.check(ok, err, errNotResourceOwner)
	default:
		return errUnknownPrincipal
	}
}

// SubmissionAccess áp dụng cùng luật với HomeworkAccess:
// học viên chỉ xem được điểm của chính mình
func (v *AccessValidator) SubmissionAccess(p Principal, lessonID uuid.UUID, studentID *uuid.UUID) error {
	return v.HomeworkAccess(p, lessonID, studentID)
}

// ModificationSubmissionAccess chấm điểm chỉ dành cho admin và giảng viên phụ trách
func (v *AccessValidator) ModificationSubmissionAccess(p Principal, lessonID uuid.UUID) error {
	return v.ModificationLessonAccess(p, lessonID)
}
