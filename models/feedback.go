package models

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`

	Student *User   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"course,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
