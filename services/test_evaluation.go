package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tmnhat/learning-center-backend/models"
)

const (
	// MaxScore là thang điểm phần trăm của bài kiểm tra
	MaxScore = 100
	// MinSuccessScore là điểm phần trăm tối thiểu để đạt
	MinSuccessScore = 80
)

// QuestionResult là câu trả lời của học viên cho một câu hỏi
type QuestionResult struct {
	QuestionID uuid.UUID   `json:"question_id" binding:"required"`
	OptionIDs  []uuid.UUID `json:"option_ids" binding:"required"`
}

// EvaluateTest chấm bài làm của học viên. Mỗi câu trả lời phải khớp một
// câu hỏi của bài kiểm tra và số câu trả lời phải bằng đúng số câu hỏi.
// Câu hỏi một đáp án chỉ được gửi một phương án. Điểm từng câu bằng trọng
// số độ khó khi tập phương án gửi lên trùng khớp hoàn toàn với tập đáp án
// đúng, ngược lại là 0. Kết quả là phần trăm trên tổng trọng số.
func EvaluateTest(test *models.Test, results []QuestionResult) (float64, models.TestCompletionStatus, error) {
	if test == nil {
		return 0, "", models.NewValidationError("Bài kiểm tra không được để trống")
	}
	if len(results) != len(test.Questions) {
		return 0, "", models.NewValidationError("Số câu trả lời không khớp với số câu hỏi của bài kiểm tra")
	}

	questionByID := make(map[uuid.UUID]*models.Question, len(test.Questions))
	for i := range test.Questions {
		questionByID[test.Questions[i].ID] = &test.Questions[i]
	}

	answered := make(map[uuid.UUID]struct{}, len(results))
	userScore := 0
	for _, result := range results {
		question, ok := questionByID[result.QuestionID]
		if !ok {
			return 0, "", models.NewValidationError("Câu trả lời không thuộc bài kiểm tra này")
		}
		if _, dup := answered[result.QuestionID]; dup {
			return 0, "", models.NewValidationError("Câu hỏi bị trả lời lặp lại")
		}
		answered[result.QuestionID] = struct{}{}

		if question.Type == models.SingleAnswer && len(result.OptionIDs) > 1 {
			return 0, "", models.NewValidationError("Số lượng đáp án gửi lên không hợp lệ")
		}

		if matchesCorrectOptions(question, result.OptionIDs) {
			userScore += question.Complexity.Weight()
		}
	}

	totalWeight := test.TotalWeight()
	if totalWeight == 0 {
		return 0, "", models.NewValidationError("Bài kiểm tra chưa có câu hỏi nào")
	}

	percentage := float64(userScore) / float64(totalWeight) * MaxScore
	status := models.TestStatusFailed
	if percentage >= MinSuccessScore {
		status = models.TestStatusPassed
	}
	return percentage, status, nil
}

// matchesCorrectOptions so khớp chính xác tập id gửi lên với tập đáp án đúng
func matchesCorrectOptions(question *models.Question, optionIDs []uuid.UUID) bool {
	correct := question.CorrectOptionIDs()
	if len(optionIDs) != len(correct) {
		return false
	}
	seen := make(map[uuid.UUID]struct{}, len(optionIDs))
	for _, id := range optionIDs {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

type TestEvaluationService struct {
	DB *gorm.DB
}

func NewTestEvaluationService(db *gorm.DB) *TestEvaluationService {
	return &TestEvaluationService{DB: db}
}

// CompleteTest chấm bài và lưu kết quả. Mỗi cặp học viên và bài kiểm tra
// chỉ giữ một bản ghi, làm lại sẽ ghi đè kết quả cũ
func (s *TestEvaluationService) CompleteTest(studentID, testID uuid.UUID, results []QuestionResult) (*models.TestAttempt, error) {
	var test models.Test
	err := s.DB.Preload("Questions.Options").First(&test, "id = ?", testID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Không tìm thấy bài kiểm tra")
	}
	if err != nil {
		return nil, err
	}

	if !test.Available {
		return nil, models.NewValidationError("Bài kiểm tra chưa được mở")
	}

	grade, status, err := EvaluateTest(&test, results)
	if err != nil {
		return nil, err
	}

	attempt := models.TestAttempt{
		StudentID: studentID,
		TestID:    testID,
		Grade:     grade,
		Status:    status,
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "status", "updated_at"}),
	}).Create(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindAttempt trả về kết quả làm bài của học viên,
// chưa làm lần nào thì báo lỗi
func (s *TestEvaluationService) FindAttempt(studentID, testID uuid.UUID) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	err := s.DB.First(&attempt, "student_id = ? AND test_id = ?", studentID, testID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewValidationError("Học viên chưa làm bài kiểm tra này")
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
