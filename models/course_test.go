package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstructor() *User {
	return &User{ID: uuid.New(), Role: RoleInstructor}
}

func newStudent() *User {
	return &User{ID: uuid.New(), Role: RoleStudent}
}

func newLesson() *Lesson {
	return &Lesson{ID: uuid.New(), Title: "Bài học"}
}

func TestCourseAvailableCanDauDuBaiHocVaGiangVien(t *testing.T) {
	course := &Course{ID: uuid.New(), Title: "Go cơ bản"}
	assert.False(t, course.Available)

	require.NoError(t, course.AddInstructor(newInstructor()))
	assert.False(t, course.Available, "chưa đủ bài học thì chưa được mở")

	for i := 0; i < MinLessonsRequired-1; i++ {
		require.NoError(t, course.AddLesson(newLesson()))
	}
	assert.False(t, course.Available)

	require.NoError(t, course.AddLesson(newLesson()))
	assert.True(t, course.Available, "đủ 1 giảng viên và 5 bài học phải được mở")
}

func TestCourseMatDieuKienKhiGoBaiHoc(t *testing.T) {
	course := &Course{ID: uuid.New(), Title: "Go cơ bản"}
	require.NoError(t, course.AddInstructor(newInstructor()))

	lessons := make([]*Lesson, 0, MinLessonsRequired)
	for i := 0; i < MinLessonsRequired; i++ {
		lesson := newLesson()
		lessons = append(lessons, lesson)
		require.NoError(t, course.AddLesson(lesson))
	}
	require.True(t, course.Available)

	require.NoError(t, course.RemoveLesson(lessons[0]))
	assert.False(t, course.Available, "xuống dưới 5 bài học phải đóng khóa học")
}

func TestCourseMatDieuKienKhiGoHetGiangVien(t *testing.T) {
	course := &Course{ID: uuid.New(), Title: "Go cơ bản"}
	instructor := newInstructor()
	require.NoError(t, course.AddInstructor(instructor))
	for i := 0; i < MinLessonsRequired; i++ {
		require.NoError(t, course.AddLesson(newLesson()))
	}
	require.True(t, course.Available)

	require.NoError(t, course.RemoveInstructor(instructor))
	assert.False(t, course.Available)
}

func TestAddInstructorTrungLap(t *testing.T) {
	course := &Course{ID: uuid.New()}
	instructor := newInstructor()
	require.NoError(t, course.AddInstructor(instructor))

	err := course.AddInstructor(instructor)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, course.Instructors, 1)
}

func TestRemoveLessonKhongThuocKhoaHoc(t *testing.T) {
	course := &Course{ID: uuid.New()}
	err := course.RemoveLesson(newLesson())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveInstructorKhongThuocKhoaHoc(t *testing.T) {
	course := &Course{ID: uuid.New()}
	err := course.RemoveInstructor(newInstructor())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddLessonTrungLap(t *testing.T) {
	course := &Course{ID: uuid.New()}
	lesson := newLesson()
	require.NoError(t, course.AddLesson(lesson))

	err := course.AddLesson(lesson)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStudentGioiHanSoKhoaHoc(t *testing.T) {
	student := newStudent()
	for i := 0; i < MaxCoursesPerStudent; i++ {
		course := &Course{ID: uuid.New()}
		require.NoError(t, student.EnrollCourse(course))
	}

	err := student.EnrollCourse(&Course{ID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, student.EnrolledCourses, MaxCoursesPerStudent)
}

func TestEnrollDongBoHaiChieu(t *testing.T) {
	student := newStudent()
	course := &Course{ID: uuid.New()}

	require.NoError(t, student.EnrollCourse(course))
	assert.Len(t, course.Students, 1)
	assert.Equal(t, student.ID, course.Students[0].ID)

	require.NoError(t, student.LeaveCourse(course))
	assert.Empty(t, course.Students)
	assert.Empty(t, student.EnrolledCourses)
}

func TestEnrollTrungLap(t *testing.T) {
	student := newStudent()
	course := &Course{ID: uuid.New()}
	require.NoError(t, student.EnrollCourse(course))

	err := student.EnrollCourse(course)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDetachAllUsersTruocKhiXoa(t *testing.T) {
	course := &Course{ID: uuid.New()}
	instructor := newInstructor()
	require.NoError(t, course.AddInstructor(instructor))

	student := newStudent()
	require.NoError(t, student.EnrollCourse(course))

	course.DetachAllUsers()

	assert.Empty(t, course.Students)
	assert.Empty(t, course.Instructors)
	assert.False(t, course.Available)
}
