package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxOptions là số phương án tối đa của một câu hỏi
const MaxOptions = 6

type QuestionType string

const (
	SingleAnswer QuestionType = "single_answer"
	MultiAnswer  QuestionType = "multi_answer"
	TextAnswer   QuestionType = "text_answer"
)

type QuestionComplexity string

const (
	ComplexityLow    QuestionComplexity = "low"
	ComplexityMedium QuestionComplexity = "medium"
	ComplexityHard   QuestionComplexity = "hard"
)

// Weight là trọng số điểm của câu hỏi theo độ khó
func (c QuestionComplexity) Weight() int {
	switch c {
	case ComplexityMedium:
		return 2
	case ComplexityHard:
		return 3
	default:
		return 1
	}
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TestID uuid.UUID `gorm:"type:uuid;not null;index" json:"test_id"`

	Content    string             `gorm:"type:text;not null" json:"content"`
	Type       QuestionType       `gorm:"size:20;not null" json:"type"`
	Complexity QuestionComplexity `gorm:"size:20;not null;default:'low'" json:"complexity"`
	OrderIndex int                `gorm:"default:0" json:"order_index"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;" json:"options,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`

	Content string `gorm:"type:text;not null" json:"content"`
	Correct bool   `gorm:"default:false" json:"correct"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (q *Question) AddOption(option *Option) error {
	if option == nil {
		return NewValidationError("Phương án không được để trống")
	}
	if len(q.Options) >= MaxOptions {
		return NewValidationError(fmt.Sprintf("Câu hỏi chỉ được tối đa %d phương án", MaxOptions))
	}
	if containsOption(q.Options, option.ID) {
		return NewConflictError("Phương án đã có trong câu hỏi này rồi")
	}
	option.QuestionID = q.ID
	q.Options = append(q.Options, *option)
	return nil
}

// AddAllOptions kiểm tra sức chứa trước khi thêm hàng loạt,
// báo số chỗ còn lại nếu vượt quá
func (q *Question) AddAllOptions(options []*Option) error {
	if len(options) == 0 {
		return NewValidationError("Danh sách phương án không được để trống")
	}
	if len(q.Options)+len(options) > MaxOptions {
		return NewValidationError(fmt.Sprintf("Quá nhiều phương án, chỉ còn nhận được %d phương án", MaxOptions-len(q.Options)))
	}
	for _, option := range options {
		if err := q.AddOption(option); err != nil {
			return err
		}
	}
	return nil
}

// RemoveOption báo lỗi nếu phương án không thuộc câu hỏi
func (q *Question) RemoveOption(option *Option) error {
	if option == nil {
		return NewValidationError("Phương án không được để trống")
	}
	if !containsOption(q.Options, option.ID) {
		return NewValidationError("Phương án không thuộc câu hỏi này")
	}
	q.Options = removeOptionByID(q.Options, option.ID)
	return nil
}

// CorrectOptionIDs trả về tập id các phương án đúng
func (q *Question) CorrectOptionIDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{})
	for i := range q.Options {
		if q.Options[i].Correct {
			ids[q.Options[i].ID] = struct{}{}
		}
	}
	return ids
}

// CorrectOptionCount đếm số phương án đúng, dùng khi kiểm tra
// số lượng đáp án hợp lệ theo loại câu hỏi
func (q *Question) CorrectOptionCount() int {
	count := 0
	for i := range q.Options {
		if q.Options[i].Correct {
			count++
		}
	}
	return count
}

func containsOption(options []Option, id uuid.UUID) bool {
	for i := range options {
		if options[i].ID == id {
			return true
		}
	}
	return false
}

func removeOptionByID(options []Option, id uuid.UUID) []Option {
	out := options[:0]
	for i := range options {
		if options[i].ID != id {
			out = append(out, options[i])
		}
	}
	return out
}
