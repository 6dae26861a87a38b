package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmnhat/learning-center-backend/models"
)

// fakeAccessQueries trả lời các truy vấn tồn tại từ dữ liệu dựng sẵn
type fakeAccessQueries struct {
	courseStudents    map[uuid.UUID][]uuid.UUID
	courseInstructors map[uuid.UUID][]uuid.UUID
	lessonCourse      map[uuid.UUID]uuid.UUID
	testCourse        map[uuid.UUID]uuid.UUID
	questionTest      map[uuid.UUID]uuid.UUID
	homeworkLesson    map[uuid.UUID]uuid.UUID
	homeworkStudent   map[uuid.UUID]uuid.UUID
	feedbackStudent   map[uuid.UUID]uuid.UUID
}

func newFakeQueries() *fakeAccessQueries {
	return &fakeAccessQueries{
		courseStudents:    map[uuid.UUID][]uuid.UUID{},
		courseInstructors: map[uuid.UUID][]uuid.UUID{},
		lessonCourse:      map[uuid.UUID]uuid.UUID{},
		testCourse:        map[uuid.UUID]uuid.UUID{},
		questionTest:      map[uuid.UUID]uuid.UUID{},
		homeworkLesson:    map[uuid.UUID]uuid.UUID{},
		homeworkStudent:   map[uuid.UUID]uuid.UUID{},
		feedbackStudent:   map[uuid.UUID]uuid.UUID{},
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeAccessQueries) CourseWithStudent(courseID, studentID uuid.UUID) (bool, error) {
	return containsID(f.courseStudents[courseID], studentID), nil
}

func (f *fakeAccessQueries) CourseWithInstructor(courseID, instructorID uuid.UUID) (bool, error) {
	return containsID(f.courseInstructors[courseID], instructorID), nil
}

func (f *fakeAccessQueries) LessonCourseWithStudent(lessonID, studentID uuid.UUID) (bool, error) {
	courseID, ok := f.lessonCourse[lessonID]
	if !ok {
		return false, nil
	}
	return f.CourseWithStudent(courseID, studentID)
}

func (f *fakeAccessQueries) LessonCourseWithInstructor(lessonID, instructorID uuid.UUID) (bool, error) {
	courseID, ok := f.lessonCourse[lessonID]
	if !ok {
		return false, nil
	}
	return f.CourseWithInstructor(courseID, instructorID)
}

func (f *fakeAccessQueries) TestCourseWithStudent(testID, studentID uuid.UUID) (bool, error) {
	courseID, ok := f.testCourse[testID]
	if !ok {
		return false, nil
	}
	return f.CourseWithStudent(courseID, studentID)
}

func (f *fakeAccessQueries) TestCourseWithInstructor(testID, instructorID uuid.UUID) (bool, error) {
	courseID, ok := f.testCourse[testID]
	if !ok {
		return false, nil
	}
	return f.CourseWithInstructor(courseID, instructorID)
}

func (f *fakeAccessQueries) FeedbackOfStudent(feedbackID, studentID uuid.UUID) (bool, error) {
	return f.feedbackStudent[feedbackID] == studentID, nil
}

func (f *fakeAccessQueries) HomeworkOfStudent(homeworkID, studentID uuid.UUID) (bool, error) {
	return f.homeworkStudent[homeworkID] == studentID, nil
}

func (f *fakeAccessQueries) TestIDOfQuestion(questionID uuid.UUID) (uuid.UUID, error) {
	testID, ok := f.questionTest[questionID]
	if !ok {
		return uuid.Nil, models.NewNotFoundError("Không tìm thấy câu hỏi")
	}
	return testID, nil
}

func (f *fakeAccessQueries) LessonIDOfHomework(homeworkID uuid.UUID) (uuid.UUID, error) {
	lessonID, ok := f.homeworkLesson[homeworkID]
	if !ok {
		return uuid.Nil, models.NewNotFoundError("Không tìm thấy bài tập")
	}
	return lessonID, nil
}

func TestCourseAccessTheoVaiTro(t *testing.T) {
	queries := newFakeQueries()
	courseID := uuid.New()
	instructorID := uuid.New()
	studentID := uuid.New()
	queries.courseInstructors[courseID] = []uuid.UUID{instructorID}
	queries.courseStudents[courseID] = []uuid.UUID{studentID}

	validator := NewAccessValidator(queries)

	admin := Principal{ID: uuid.New(), Role: models.RoleAdmin}
	assert.NoError(t, validator.CourseAccess(admin, courseID))

	instructor := Principal{ID: instructorID, Role: models.RoleInstructor}
	assert.NoError(t, validator.CourseAccess(instructor, courseID))

	otherInstructor := Principal{ID: uuid.New(), Role: models.RoleInstructor}
	err := validator.CourseAccess(otherInstructor, courseID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)

	student := Principal{ID: studentID, Role: models.RoleStudent}
	assert.NoError(t, validator.CourseAccess(student, courseID))

	otherStudent := Principal{ID: uuid.New(), Role: models.RoleStudent}
	err = validator.CourseAccess(otherStudent, courseID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)
}

func TestCourseAccessVaiTroKhongXacDinh(t *testing.T) {
	validator := NewAccessValidator(newFakeQueries())

	err := validator.CourseAccess(Principal{ID: uuid.New(), Role: "unknown"}, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted, "vai trò lạ phải bị từ chối")
}

func TestModificationCourseAccessChanHocVien(t *testing.T) {
	queries := newFakeQueries()
	courseID := uuid.New()
	studentID := uuid.New()
	queries.courseStudents[courseID] = []uuid.UUID{studentID}

	validator := NewAccessValidator(queries)

	// Học viên đã đăng ký vẫn không được chỉnh sửa
	err := validator.ModificationCourseAccess(Principal{ID: studentID, Role: models.RoleStudent}, courseID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)
}

func TestCourseAccessByInstructorIDsPhaiCoChinhMinh(t *testing.T) {
	validator := NewAccessValidator(newFakeQueries())
	instructorID := uuid.New()

	p := Principal{ID: instructorID, Role: models.RoleInstructor}
	assert.NoError(t, validator.CourseAccessByInstructorIDs(p, []uuid.UUID{uuid.New(), instructorID}))

	err := validator.CourseAccessByInstructorIDs(p, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)

	admin := Principal{ID: uuid.New(), Role: models.RoleAdmin}
	assert.NoError(t, validator.CourseAccessByInstructorIDs(admin, []uuid.UUID{uuid.New()}))
}

func TestHomeworkAccessHocVienChiXemCuaMinh(t *testing.T) {
	queries := newFakeQueries()
	courseID := uuid.New()
	lessonID := uuid.New()
	studentID := uuid.New()
	queries.lessonCourse[lessonID] = courseID
	queries.courseStudents[courseID] = []uuid.UUID{studentID}

	validator := NewAccessValidator(queries)
	student := Principal{ID: studentID, Role: models.RoleStudent}

	// Không chỉ định student_id: xem của mình
	assert.NoError(t, validator.HomeworkAccess(student, lessonID, nil))

	// Chỉ định đúng id của mình
	assert.NoError(t, validator.HomeworkAccess(student, lessonID, &studentID))

	// Chỉ định id người khác
	otherID := uuid.New()
	err := validator.HomeworkAccess(student, lessonID, &otherID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)
	assert.Contains(t, err.Error(), "Sai mã học viên")
}

func TestQuestionAccessCauHoiKhongTonTai(t *testing.T) {
	validator := NewAccessValidator(newFakeQueries())

	err := validator.QuestionAccess(Principal{ID: uuid.New(), Role: models.RoleAdmin}, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQuestionAccessTheoBaiKiemTra(t *testing.T) {
	queries := newFakeQueries()
	courseID := uuid.New()
	testID := uuid.New()
	questionID := uuid.New()
	instructorID := uuid.New()
	queries.testCourse[testID] = courseID
	queries.questionTest[questionID] = testID
	queries.courseInstructors[courseID] = []uuid.UUID{instructorID}

	validator := NewAccessValidator(queries)

	assert.NoError(t, validator.QuestionAccess(Principal{ID: instructorID, Role: models.RoleInstructor}, questionID))

	err := validator.QuestionAccess(Principal{ID: uuid.New(), Role: models.RoleStudent}, questionID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)
}

func TestHomeworkAccessByID(t *testing.T) {
	queries := newFakeQueries()
	courseID := uuid.New()
	lessonID := uuid.New()
	homeworkID := uuid.New()
	ownerID := uuid.New()
	instructorID := uuid.New()
	queries.lessonCourse[lessonID] = courseID
	queries.homeworkLesson[homeworkID] = lessonID
	queries.homeworkStudent[homeworkID] = ownerID
	queries.courseInstructors[courseID] = []uuid.UUID{instructorID}

	validator := NewAccessValidator(queries)

	assert.NoError(t, validator.HomeworkAccessByID(Principal{ID: ownerID, Role: models.RoleStudent}, homeworkID))
	assert.NoError(t, validator.HomeworkAccessByID(Principal{ID: instructorID, Role: models.RoleInstructor}, homeworkID))

	err := validator.HomeworkAccessByID(Principal{ID: uuid.New(), Role: models.RoleStudent}, homeworkID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAccessRestricted)
}
