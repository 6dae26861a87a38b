package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission là điểm chấm của giảng viên cho bài làm của học viên theo từng bài học
type Submission struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"student_id"`
	LessonID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`

	Student *User   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"student,omitempty"`
	Lesson  *Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"lesson,omitempty"`

	Grade float64 `gorm:"not null" json:"grade"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
