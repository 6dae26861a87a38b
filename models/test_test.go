package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestion() *Question {
	return &Question{ID: uuid.New(), Content: "Câu hỏi", Type: SingleAnswer, Complexity: ComplexityLow}
}

func TestTestAvailableTheoSoCauHoi(t *testing.T) {
	test := &Test{ID: uuid.New()}
	assert.False(t, test.Available)

	require.NoError(t, test.AddQuestion(newQuestion()))
	assert.False(t, test.Available, "1 câu hỏi chưa đủ để mở")

	require.NoError(t, test.AddQuestion(newQuestion()))
	assert.True(t, test.Available, "đủ 2 câu hỏi phải được mở")
}

func TestTestGioiHanCauHoi(t *testing.T) {
	test := &Test{ID: uuid.New()}
	for i := 0; i < MaxQuestions; i++ {
		require.NoError(t, test.AddQuestion(newQuestion()))
	}
	assert.True(t, test.Available)

	err := test.AddQuestion(newQuestion())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, test.Questions, MaxQuestions)
}

func TestRemoveQuestionKhongThuocBaiKiemTra(t *testing.T) {
	test := &Test{ID: uuid.New()}
	err := test.RemoveQuestion(newQuestion())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveQuestionDongTrangThai(t *testing.T) {
	test := &Test{ID: uuid.New()}
	q1 := newQuestion()
	q2 := newQuestion()
	require.NoError(t, test.AddQuestion(q1))
	require.NoError(t, test.AddQuestion(q2))
	require.True(t, test.Available)

	require.NoError(t, test.RemoveQuestion(q2))
	assert.False(t, test.Available, "còn 1 câu hỏi thì phải đóng")
}

func TestTotalWeight(t *testing.T) {
	test := &Test{ID: uuid.New()}
	require.NoError(t, test.AddQuestion(&Question{ID: uuid.New(), Complexity: ComplexityLow}))
	require.NoError(t, test.AddQuestion(&Question{ID: uuid.New(), Complexity: ComplexityMedium}))
	require.NoError(t, test.AddQuestion(&Question{ID: uuid.New(), Complexity: ComplexityHard}))

	assert.Equal(t, 6, test.TotalWeight())
}

func TestSortQuestionsTheoThuTu(t *testing.T) {
	test := &Test{ID: uuid.New()}
	q3 := &Question{ID: uuid.New(), OrderIndex: 3}
	q1 := &Question{ID: uuid.New(), OrderIndex: 1}
	q2 := &Question{ID: uuid.New(), OrderIndex: 2}
	require.NoError(t, test.AddQuestion(q3))
	require.NoError(t, test.AddQuestion(q1))
	require.NoError(t, test.AddQuestion(q2))

	test.SortQuestions()

	assert.Equal(t, q1.ID, test.Questions[0].ID)
	assert.Equal(t, q2.ID, test.Questions[1].ID)
	assert.Equal(t, q3.ID, test.Questions[2].ID)
}

func TestComplexityWeight(t *testing.T) {
	assert.Equal(t, 1, ComplexityLow.Weight())
	assert.Equal(t, 2, ComplexityMedium.Weight())
	assert.Equal(t, 3, ComplexityHard.Weight())
}

func TestQuestionGioiHanPhuongAn(t *testing.T) {
	question := newQuestion()
	for i := 0; i < MaxOptions; i++ {
		require.NoError(t, question.AddOption(&Option{ID: uuid.New()}))
	}

	err := question.AddOption(&Option{ID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddAllOptionsBaoSoChoConLai(t *testing.T) {
	question := newQuestion()
	for i := 0; i < 4; i++ {
		require.NoError(t, question.AddOption(&Option{ID: uuid.New()}))
	}

	incoming := []*Option{
		{ID: uuid.New()},
		{ID: uuid.New()},
		{ID: uuid.New()},
	}
	err := question.AddAllOptions(incoming)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "chỉ còn nhận được 2 phương án")
	assert.Len(t, question.Options, 4, "không được thêm một phần khi vượt sức chứa")
}

func TestRemoveOptionKhongThuocCauHoi(t *testing.T) {
	question := newQuestion()
	require.NoError(t, question.AddOption(&Option{ID: uuid.New()}))

	err := question.RemoveOption(&Option{ID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCorrectOptionIDs(t *testing.T) {
	question := newQuestion()
	correct := &Option{ID: uuid.New(), Correct: true}
	require.NoError(t, question.AddOption(correct))
	require.NoError(t, question.AddOption(&Option{ID: uuid.New()}))

	ids := question.CorrectOptionIDs()
	assert.Len(t, ids, 1)
	_, ok := ids[correct.ID]
	assert.True(t, ok)
	assert.Equal(t, 1, question.CorrectOptionCount())
}
