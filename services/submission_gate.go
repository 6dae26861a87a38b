package services

import (
	"github.com/tmnhat/learning-center-backend/models"
)

// EnsureRequiredTestPassed chặn việc nộp bài tập cho bài học có bài kiểm tra
// đang mở khi học viên chưa vượt qua bài kiểm tra đó. Attempt nil nghĩa là
// học viên chưa làm lần nào
func EnsureRequiredTestPassed(lesson *models.Lesson, attempt *models.TestAttempt) error {
	if lesson == nil {
		return models.NewValidationError("Bài học không được để trống")
	}
	if !lesson.RequiresPassedTest() {
		return nil
	}
	if attempt == nil || attempt.Status != models.TestStatusPassed {
		return models.NewValidationError("Học viên chưa vượt qua bài kiểm tra bắt buộc của bài học này")
	}
	return nil
}
