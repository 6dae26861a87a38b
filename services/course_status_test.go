package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmnhat/learning-center-backend/models"
)

func TestComputeCourseStatusDangHoc(t *testing.T) {
	// Mới có điểm 3/5 bài học: đang học, chưa có điểm tổng kết
	result := ComputeCourseStatus(5, []float64{90, 85, 100})

	assert.Equal(t, models.CourseStatusInProgress, result.Status)
	assert.Nil(t, result.FinalGrade)
}

func TestComputeCourseStatusHoanThanh(t *testing.T) {
	result := ComputeCourseStatus(3, []float64{90, 80, 85})

	assert.Equal(t, models.CourseStatusCompleted, result.Status)
	require.NotNil(t, result.FinalGrade)
	assert.InDelta(t, 85.0, *result.FinalGrade, 0.0001)
}

func TestComputeCourseStatusTruot(t *testing.T) {
	result := ComputeCourseStatus(3, []float64{90, 60, 70})

	assert.Equal(t, models.CourseStatusFailed, result.Status)
	require.NotNil(t, result.FinalGrade)
	assert.InDelta(t, 220.0/3.0, *result.FinalGrade, 0.0001)
}

func TestComputeCourseStatusNguongDiem(t *testing.T) {
	// Trung bình đúng 80 là hoàn thành
	result := ComputeCourseStatus(2, []float64{80, 80})
	assert.Equal(t, models.CourseStatusCompleted, result.Status)

	// Nhích xuống dưới 80 là trượt
	result = ComputeCourseStatus(2, []float64{80, 79.99})
	assert.Equal(t, models.CourseStatusFailed, result.Status)
}

func TestComputeCourseStatusKhongCoBaiHoc(t *testing.T) {
	// Khóa học mở luôn có ít nhất 5 bài học, nhưng hàm thuần
	// vẫn phải xử lý danh sách rỗng an toàn
	result := ComputeCourseStatus(0, nil)
	assert.Equal(t, models.CourseStatusInProgress, result.Status)
	assert.Nil(t, result.FinalGrade)
}

func TestEnsureRequiredTestPassed(t *testing.T) {
	lessonNoTest := &models.Lesson{}
	assert.NoError(t, EnsureRequiredTestPassed(lessonNoTest, nil))

	// Bài kiểm tra chưa mở thì không chặn
	lessonClosedTest := &models.Lesson{Test: &models.Test{Available: false}}
	assert.NoError(t, EnsureRequiredTestPassed(lessonClosedTest, nil))

	lessonOpenTest := &models.Lesson{Test: &models.Test{Available: true}}

	err := EnsureRequiredTestPassed(lessonOpenTest, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)

	failed := &models.TestAttempt{Status: models.TestStatusFailed}
	err = EnsureRequiredTestPassed(lessonOpenTest, failed)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)

	passed := &models.TestAttempt{Status: models.TestStatusPassed}
	assert.NoError(t, EnsureRequiredTestPassed(lessonOpenTest, passed))
}
