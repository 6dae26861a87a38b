package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

// MaxCoursesPerStudent là số khóa học tối đa một học viên được đăng ký
const MaxCoursesPerStudent = 5

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:'student'" json:"role"`

	TeachingCourses []Course `gorm:"many2many:course_instructors;" json:"teaching_courses,omitempty"`
	EnrolledCourses []Course `gorm:"many2many:course_students;" json:"enrolled_courses,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// EnrollCourse đăng ký học viên vào khóa học, đồng bộ cả hai chiều quan hệ
func (u *User) EnrollCourse(course *Course) error {
	if course == nil {
		return NewValidationError("Khóa học không được để trống")
	}
	if u.Role != RoleStudent {
		return NewValidationError("Chỉ học viên mới được đăng ký khóa học")
	}
	if len(u.EnrolledCourses) >= MaxCoursesPerStudent {
		return NewValidationError(fmt.Sprintf("Học viên chỉ được đăng ký tối đa %d khóa học", MaxCoursesPerStudent))
	}
	if containsCourse(u.EnrolledCourses, course.ID) {
		return NewConflictError("Học viên đã đăng ký khóa học này rồi")
	}
	u.EnrolledCourses = append(u.EnrolledCourses, *course)
	if !containsUser(course.Students, u.ID) {
		course.Students = append(course.Students, *u)
	}
	return nil
}

// LeaveCourse hủy đăng ký, báo lỗi nếu học viên chưa có trong khóa học
func (u *User) LeaveCourse(course *Course) error {
	if course == nil {
		return NewValidationError("Khóa học không được để trống")
	}
	if !containsCourse(u.EnrolledCourses, course.ID) {
		return NewValidationError("Học viên chưa đăng ký khóa học này")
	}
	u.EnrolledCourses = removeCourseByID(u.EnrolledCourses, course.ID)
	course.Students = removeUserByID(course.Students, u.ID)
	return nil
}

func containsUser(users []User, id uuid.UUID) bool {
	for i := range users {
		if users[i].ID == id {
			return true
		}
	}
	return false
}

func removeUserByID(users []User, id uuid.UUID) []User {
	out := users[:0]
	for i := range users {
		if users[i].ID != id {
			out = append(out, users[i])
		}
	}
	return out
}

func containsCourse(courses []Course, id uuid.UUID) bool {
	for i := range courses {
		if courses[i].ID == id {
			return true
		}
	}
	return false
}

func removeCourseByID(courses []Course, id uuid.UUID) []Course {
	out := courses[:0]
	for i := range courses {
		if courses[i].ID != id {
			out = append(out, courses[i])
		}
	}
	return out
}
