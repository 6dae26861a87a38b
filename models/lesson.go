package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"course,omitempty"`

	Title      string `gorm:"size:255;not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`

	Test        *Test        `gorm:"foreignKey:LessonID" json:"test,omitempty"`
	Submissions []Submission `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"submissions,omitempty"`
	Homeworks   []Homework   `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;" json:"homeworks,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RequiresPassedTest cho biết bài học có yêu cầu vượt qua bài kiểm tra
// trước khi nộp bài tập hay không
func (l *Lesson) RequiresPassedTest() bool {
	return l.Test != nil && l.Test.Available
}
