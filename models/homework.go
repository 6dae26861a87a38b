package models

import (
	"time"

	"github.com/google/uuid"
)

// Homework là file bài tập học viên nộp cho một bài học,
// file gốc lưu trên Supabase Storage theo FilePath
type Homework struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`

	Student *User   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"student,omitempty"`
	Lesson  *Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"lesson,omitempty"`

	FileName string `gorm:"size:255;not null" json:"file_name"`
	FilePath string `gorm:"size:512;not null" json:"file_path"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
