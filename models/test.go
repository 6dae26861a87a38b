package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// MinQuestions và MaxQuestions giới hạn số câu hỏi của một bài kiểm tra
	MinQuestions = 2
	MaxQuestions = 10
)

type Test struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lesson_id"`

	Title     string `gorm:"size:255;not null" json:"title"`
	Available bool   `gorm:"default:false" json:"available"`

	Questions []Question `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;" json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefreshAvailable tính lại trạng thái mở của bài kiểm tra
// theo số câu hỏi hiện có
func (t *Test) RefreshAvailable() {
	n := len(t.Questions)
	t.Available = n >= MinQuestions && n <= MaxQuestions
}

func (t *Test) AddQuestion(question *Question) error {
	if question == nil {
		return NewValidationError("Câu hỏi không được để trống")
	}
	if len(t.Questions) >= MaxQuestions {
		return NewValidationError(fmt.Sprintf("Bài kiểm tra chỉ được tối đa %d câu hỏi", MaxQuestions))
	}
	if containsQuestion(t.Questions, question.ID) {
		return NewConflictError("Câu hỏi đã có trong bài kiểm tra này rồi")
	}
	question.TestID = t.ID
	t.Questions = append(t.Questions, *question)
	t.RefreshAvailable()
	return nil
}

func (t *Test) AddAllQuestions(questions []*Question) error {
	if len(questions) == 0 {
		return NewValidationError("Danh sách câu hỏi không được để trống")
	}
	if len(t.Questions)+len(questions) > MaxQuestions {
		return NewValidationError(fmt.Sprintf("Quá nhiều câu hỏi, chỉ còn nhận được %d câu", MaxQuestions-len(t.Questions)))
	}
	for _, question := range questions {
		if err := t.AddQuestion(question); err != nil {
			return err
		}
	}
	return nil
}

// RemoveQuestion báo lỗi nếu câu hỏi không thuộc bài kiểm tra
func (t *Test) RemoveQuestion(question *Question) error {
	if question == nil {
		return NewValidationError("Câu hỏi không được để trống")
	}
	if !containsQuestion(t.Questions, question.ID) {
		return NewValidationError("Câu hỏi không thuộc bài kiểm tra này")
	}
	t.Questions = removeQuestionByID(t.Questions, question.ID)
	t.RefreshAvailable()
	return nil
}

// SortQuestions xếp câu hỏi theo thứ tự giảng viên đã đặt
func (t *Test) SortQuestions() {
	sort.SliceStable(t.Questions, func(i, j int) bool {
		return t.Questions[i].OrderIndex < t.Questions[j].OrderIndex
	})
}

// TotalWeight là tổng trọng số của mọi câu hỏi trong bài kiểm tra
func (t *Test) TotalWeight() int {
	total := 0
	for i := range t.Questions {
		total += t.Questions[i].Complexity.Weight()
	}
	return total
}

func containsQuestion(questions []Question, id uuid.UUID) bool {
	for i := range questions {
		if questions[i].ID == id {
			return true
		}
	}
	return false
}

func removeQuestionByID(questions []Question, id uuid.UUID) []Question {
	out := questions[:0]
	for i := range questions {
		if questions[i].ID != id {
			out = append(out, questions[i])
		}
	}
	return out
}
