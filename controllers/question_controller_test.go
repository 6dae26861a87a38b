package controllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmnhat/learning-center-backend/models"
)

func questionInput(qType models.QuestionType, correct ...bool) QuestionInput {
	input := QuestionInput{
		Content:    "Câu hỏi",
		Type:       qType,
		Complexity: models.ComplexityLow,
	}
	for i, c := range correct {
		input.Options = append(input.Options, OptionInput{
			Content: fmt.Sprintf("Phương án %d", i+1),
			Correct: c,
		})
	}
	return input
}

func TestValidateQuestionInputMotDapAn(t *testing.T) {
	assert.NoError(t, validateQuestionInput(questionInput(models.SingleAnswer, true, false)))

	err := validateQuestionInput(questionInput(models.SingleAnswer, true, true))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestValidateQuestionInputNhieuDapAn(t *testing.T) {
	assert.NoError(t, validateQuestionInput(questionInput(models.MultiAnswer, true, true, false)))

	err := validateQuestionInput(questionInput(models.MultiAnswer, true, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestValidateQuestionInputTuLuan(t *testing.T) {
	// Câu tự luận chỉ cần ít nhất một đáp án được chấp nhận,
	// không áp dụng giới hạn của câu một đáp án
	assert.NoError(t, validateQuestionInput(questionInput(models.TextAnswer, true)))
	assert.NoError(t, validateQuestionInput(questionInput(models.TextAnswer, true, true)))

	err := validateQuestionInput(questionInput(models.TextAnswer, false, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestValidateQuestionInputLoaiKhongHopLe(t *testing.T) {
	err := validateQuestionInput(questionInput(models.QuestionType("essay"), true))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestValidateQuestionInputKhongCoDapAnDung(t *testing.T) {
	err := validateQuestionInput(questionInput(models.MultiAnswer, false, false))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}
