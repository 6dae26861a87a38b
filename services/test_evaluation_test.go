package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmnhat/learning-center-backend/models"
)

// buildTest dựng bài kiểm tra với danh sách (độ khó, id đáp án đúng)
func buildTest(questions ...models.Question) *models.Test {
	test := &models.Test{ID: uuid.New(), Available: true}
	test.Questions = questions
	test.RefreshAvailable()
	return test
}

func singleQuestion(complexity models.QuestionComplexity) (models.Question, uuid.UUID, uuid.UUID) {
	correctID := uuid.New()
	wrongID := uuid.New()
	q := models.Question{
		ID:         uuid.New(),
		Type:       models.SingleAnswer,
		Complexity: complexity,
		Options: []models.Option{
			{ID: correctID, Correct: true},
			{ID: wrongID},
		},
	}
	return q, correctID, wrongID
}

func TestEvaluateTestTatCaDung(t *testing.T) {
	q1, c1, _ := singleQuestion(models.ComplexityLow)
	q2, c2, _ := singleQuestion(models.ComplexityHard)
	test := buildTest(q1, q2)

	grade, status, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c2}},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(MaxScore), grade)
	assert.Equal(t, models.TestStatusPassed, status)
}

func TestEvaluateTestDiemTheoTrongSo(t *testing.T) {
	q1, c1, _ := singleQuestion(models.ComplexityLow)
	q2, _, w2 := singleQuestion(models.ComplexityHard)
	test := buildTest(q1, q2)

	// Đúng câu low (1), sai câu hard (3): 1/4 = 25%
	grade, status, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{w2}},
	})

	require.NoError(t, err)
	assert.InDelta(t, 25.0, grade, 0.0001)
	assert.Equal(t, models.TestStatusFailed, status)
}

func TestEvaluateTestNguongDat(t *testing.T) {
	// 4 câu low + 1 câu low: đúng 4/5 = 80% phải đạt
	questions := make([]models.Question, 0, 5)
	correctIDs := make([]uuid.UUID, 0, 5)
	wrongIDs := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		q, c, w := singleQuestion(models.ComplexityLow)
		questions = append(questions, q)
		correctIDs = append(correctIDs, c)
		wrongIDs = append(wrongIDs, w)
	}
	test := buildTest(questions...)

	results := make([]QuestionResult, 0, 5)
	for i := 0; i < 4; i++ {
		results = append(results, QuestionResult{QuestionID: questions[i].ID, OptionIDs: []uuid.UUID{correctIDs[i]}})
	}
	results = append(results, QuestionResult{QuestionID: questions[4].ID, OptionIDs: []uuid.UUID{wrongIDs[4]}})

	grade, status, err := EvaluateTest(test, results)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, grade, 0.0001)
	assert.Equal(t, models.TestStatusPassed, status, "đúng 80% là đạt")

	// Đúng 3/5 = 60% thì trượt
	results[3] = QuestionResult{QuestionID: questions[3].ID, OptionIDs: []uuid.UUID{wrongIDs[3]}}
	_, status, err = EvaluateTest(test, results)
	require.NoError(t, err)
	assert.Equal(t, models.TestStatusFailed, status)
}

func TestEvaluateTestMultiAnswerPhaiTrungKhopHoanToan(t *testing.T) {
	c1 := uuid.New()
	c2 := uuid.New()
	wrong := uuid.New()
	q := models.Question{
		ID:         uuid.New(),
		Type:       models.MultiAnswer,
		Complexity: models.ComplexityMedium,
		Options: []models.Option{
			{ID: c1, Correct: true},
			{ID: c2, Correct: true},
			{ID: wrong},
		},
	}
	q2, c3, _ := singleQuestion(models.ComplexityLow)
	test := buildTest(q, q2)

	// Chỉ chọn một trong hai đáp án đúng: câu đó 0 điểm
	grade, _, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{c1}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c3}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3.0, grade, 0.0001)

	// Chọn đủ hai đáp án đúng: trọn điểm
	grade, _, err = EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{c1, c2}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c3}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, grade, 0.0001)

	// Chọn thêm đáp án sai: mất điểm dù có đủ đáp án đúng
	grade, _, err = EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{c1, c2, wrong}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c3}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3.0, grade, 0.0001)
}

func TestEvaluateTestTextAnswer(t *testing.T) {
	accepted := uuid.New()
	other := uuid.New()
	q := models.Question{
		ID:         uuid.New(),
		Type:       models.TextAnswer,
		Complexity: models.ComplexityMedium,
		Options: []models.Option{
			{ID: accepted, Correct: true},
			{ID: other},
		},
	}
	q2, c2, _ := singleQuestion(models.ComplexityMedium)
	test := buildTest(q, q2)

	grade, status, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{accepted}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c2}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, grade, 0.0001)
	assert.Equal(t, models.TestStatusPassed, status)

	// Câu tự luận không bị giới hạn số đáp án gửi lên như câu một đáp án,
	// gửi thừa thì câu đó 0 điểm chứ không báo lỗi
	grade, _, err = EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{accepted, other}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c2}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, grade, 0.0001)
}

func TestEvaluateTestSingleAnswerNhieuDapAn(t *testing.T) {
	q, c, w := singleQuestion(models.ComplexityLow)
	q2, c2, _ := singleQuestion(models.ComplexityLow)
	test := buildTest(q, q2)

	_, _, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q.ID, OptionIDs: []uuid.UUID{c, w}},
		{QuestionID: q2.ID, OptionIDs: []uuid.UUID{c2}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEvaluateTestSoCauTraLoiKhongKhop(t *testing.T) {
	q1, c1, _ := singleQuestion(models.ComplexityLow)
	q2, _, _ := singleQuestion(models.ComplexityLow)
	test := buildTest(q1, q2)

	_, _, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEvaluateTestCauTraLoiLa(t *testing.T) {
	q1, c1, _ := singleQuestion(models.ComplexityLow)
	q2, _, _ := singleQuestion(models.ComplexityLow)
	test := buildTest(q1, q2)

	_, _, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
		{QuestionID: uuid.New(), OptionIDs: []uuid.UUID{uuid.New()}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEvaluateTestCauHoiTraLoiLap(t *testing.T) {
	q1, c1, _ := singleQuestion(models.ComplexityLow)
	q2, _, _ := singleQuestion(models.ComplexityLow)
	test := buildTest(q1, q2)

	_, _, err := EvaluateTest(test, []QuestionResult{
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
		{QuestionID: q1.ID, OptionIDs: []uuid.UUID{c1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}
