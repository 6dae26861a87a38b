package models

import (
	"time"

	"github.com/google/uuid"
)

type TestCompletionStatus string

const (
	TestStatusPassed TestCompletionStatus = "passed"
	TestStatusFailed TestCompletionStatus = "failed"
)

// TestAttempt lưu lần làm bài gần nhất của học viên cho mỗi bài kiểm tra,
// khóa chính ghép đảm bảo mỗi cặp học viên và bài kiểm tra chỉ có một bản ghi
type TestAttempt struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"student_id"`
	TestID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"test_id"`

	Student *User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"student,omitempty"`
	Test    *Test `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;" json:"test,omitempty"`

	Grade  float64              `gorm:"not null" json:"grade"`
	Status TestCompletionStatus `gorm:"size:20;not null" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
