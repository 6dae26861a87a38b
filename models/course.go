package models

import (
	"time"

	"github.com/google/uuid"
)

// MinLessonsRequired là số bài học tối thiểu để khóa học được mở
const MinLessonsRequired = 5

type CourseStatus string

const (
	CourseStatusCompleted  CourseStatus = "completed"
	CourseStatusInProgress CourseStatus = "in_progress"
	CourseStatusFailed     CourseStatus = "failed"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Available   bool      `gorm:"default:false" json:"available"`

	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`
	Tests   []Test   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"tests,omitempty"`

	Instructors []User `gorm:"many2many:course_instructors;" json:"instructors,omitempty"`
	Students    []User `gorm:"many2many:course_students;" json:"students,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefreshAvailable tính lại trạng thái mở của khóa học:
// cần ít nhất 1 giảng viên và đủ số bài học tối thiểu
func (c *Course) RefreshAvailable() {
	c.Available = len(c.Instructors) >= 1 && len(c.Lessons) >= MinLessonsRequired
}

func (c *Course) AddInstructor(instructor *User) error {
	if instructor == nil {
		return NewValidationError("Giảng viên không được để trống")
	}
	if containsUser(c.Instructors, instructor.ID) {
		return NewConflictError("Giảng viên đã được phân công vào khóa học này rồi")
	}
	c.Instructors = append(c.Instructors, *instructor)
	if !containsCourse(instructor.TeachingCourses, c.ID) {
		instructor.TeachingCourses = append(instructor.TeachingCourses, *c)
	}
	c.RefreshAvailable()
	return nil
}

func (c *Course) AddAllInstructors(instructors []*User) error {
	if len(instructors) == 0 {
		return NewValidationError("Danh sách giảng viên không được để trống")
	}
	for _, instructor := range instructors {
		if err := c.AddInstructor(instructor); err != nil {
			return err
		}
	}
	return nil
}

func (c *Course) RemoveInstructor(instructor *User) error {
	if instructor == nil {
		return NewValidationError("Giảng viên không được để trống")
	}
	if !containsUser(c.Instructors, instructor.ID) {
		return NewValidationError("Giảng viên không thuộc khóa học này")
	}
	c.Instructors = removeUserByID(c.Instructors, instructor.ID)
	instructor.TeachingCourses = removeCourseByID(instructor.TeachingCourses, c.ID)
	c.RefreshAvailable()
	return nil
}

func (c *Course) AddLesson(lesson *Lesson) error {
	if lesson == nil {
		return NewValidationError("Bài học không được để trống")
	}
	if containsLesson(c.Lessons, lesson.ID) {
		return NewConflictError("Bài học đã có trong khóa học này rồi")
	}
	lesson.CourseID = c.ID
	c.Lessons = append(c.Lessons, *lesson)
	c.RefreshAvailable()
	return nil
}

func (c *Course) AddAllLessons(lessons []*Lesson) error {
	if len(lessons) == 0 {
		return NewValidationError("Danh sách bài học không được để trống")
	}
	for _, lesson := range lessons {
		if err := c.AddLesson(lesson); err != nil {
			return err
		}
	}
	return nil
}

// RemoveLesson báo lỗi nếu bài học không thuộc khóa học
func (c *Course) RemoveLesson(lesson *Lesson) error {
	if lesson == nil {
		return NewValidationError("Bài học không được để trống")
	}
	if !containsLesson(c.Lessons, lesson.ID) {
		return NewValidationError("Bài học không thuộc khóa học này")
	}
	c.Lessons = removeLessonByID(c.Lessons, lesson.ID)
	c.RefreshAvailable()
	return nil
}

func (c *Course) AddTest(test *Test) error {
	if test == nil {
		return NewValidationError("Bài kiểm tra không được để trống")
	}
	if containsTest(c.Tests, test.ID) {
		return NewConflictError("Bài kiểm tra đã có trong khóa học này rồi")
	}
	test.CourseID = c.ID
	c.Tests = append(c.Tests, *test)
	return nil
}

func (c *Course) RemoveTest(test *Test) error {
	if test == nil {
		return NewValidationError("Bài kiểm tra không được để trống")
	}
	if !containsTest(c.Tests, test.ID) {
		return NewValidationError("Bài kiểm tra không thuộc khóa học này")
	}
	c.Tests = removeTestByID(c.Tests, test.ID)
	return nil
}

// DetachAllUsers gỡ toàn bộ học viên và giảng viên trước khi xóa khóa học
func (c *Course) DetachAllUsers() {
	for i := range c.Students {
		c.Students[i].EnrolledCourses = removeCourseByID(c.Students[i].EnrolledCourses, c.ID)
	}
	for i := range c.Instructors {
		c.Instructors[i].TeachingCourses = removeCourseByID(c.Instructors[i].TeachingCourses, c.ID)
	}
	c.Students = nil
	c.Instructors = nil
	c.RefreshAvailable()
}

func containsLesson(lessons []Lesson, id uuid.UUID) bool {
	for i := range lessons {
		if lessons[i].ID == id {
			return true
		}
	}
	return false
}

func removeLessonByID(lessons []Lesson, id uuid.UUID) []Lesson {
	out := lessons[:0]
	for i := range lessons {
		if lessons[i].ID != id {
			out = append(out, lessons[i])
		}
	}
	return out
}

func containsTest(tests []Test, id uuid.UUID) bool {
	for i := range tests {
		if tests[i].ID == id {
			return true
		}
	}
	return false
}

func removeTestByID(tests []Test, id uuid.UUID) []Test {
	out := tests[:0]
	for i := range tests {
		if tests[i].ID != id {
			out = append(out, tests[i])
		}
	}
	return out
}
