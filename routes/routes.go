package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/controllers"
	"github.com/tmnhat/learning-center-backend/middleware"
	"github.com/tmnhat/learning-center-backend/models"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	// Health check
	api.GET("/health", controllers.HealthCheck)

	// Auth: không cần token
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.RefreshToken)
		auth.POST("/google", controllers.GoogleLogin)
	}

	// Các route cần đăng nhập
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/users/me", controllers.GetMe)
		authed.PUT("/users/change-password", controllers.ChangePassword)

		// Khóa học
		authed.GET("/courses", controllers.GetCourses)
		authed.GET("/my-courses", controllers.GetMyCourses)
		authed.GET("/courses/:id", controllers.GetCourseByID)
		authed.GET("/courses/:id/status", controllers.GetCourseStatus)
		authed.POST("/courses/:id/enroll", controllers.EnrollCourse)
		authed.DELETE("/courses/:id/enroll", controllers.LeaveCourse)

		// Bài học
		authed.GET("/courses/:id/lessons", controllers.GetLessonsByCourse)
		authed.GET("/lessons/:id", controllers.GetLessonByID)

		// Bài kiểm tra
		authed.GET("/tests/:id", controllers.GetTestByID)
		authed.POST("/tests/:id/complete", controllers.CompleteTest)
		authed.GET("/tests/:id/result", controllers.GetTestResult)
		authed.GET("/questions/:id", controllers.GetQuestionByID)

		// Bài tập
		authed.POST("/lessons/:id/homeworks", controllers.UploadHomework)
		authed.GET("/lessons/:id/homeworks", controllers.GetHomeworksByLesson)
		authed.GET("/my-homeworks", controllers.GetMyHomeworks)
		authed.GET("/homeworks/:id", controllers.GetHomeworkByID)
		authed.GET("/homeworks/:id/link", controllers.GetHomeworkLink)
		authed.GET("/homeworks/:id/download", controllers.DownloadHomework)
		authed.DELETE("/homeworks/:id", controllers.DeleteHomework)

		// Điểm bài học
		authed.GET("/lessons/:id/submissions", controllers.GetSubmissionsByLesson)
		authed.GET("/my-submissions", controllers.GetMySubmissions)

		// Phản hồi
		authed.POST("/courses/:id/feedbacks", controllers.CreateFeedback)
		authed.GET("/courses/:id/feedbacks", controllers.GetFeedbacksByCourse)
		authed.PUT("/feedbacks/:id", controllers.UpdateFeedback)
		authed.DELETE("/feedbacks/:id", controllers.DeleteFeedback)
	}

	// Quản lý nội dung: admin và giảng viên, quyền chi tiết
	// theo khóa học do AccessValidator kiểm tra trong handler
	manage := api.Group("")
	manage.Use(middleware.RequireRoles(string(models.RoleAdmin), string(models.RoleInstructor)))
	{
		manage.POST("/courses", controllers.CreateCourse)
		manage.PUT("/courses/:id", controllers.UpdateCourse)
		manage.DELETE("/courses/:id", controllers.DeleteCourse)
		manage.POST("/courses/:id/instructors", controllers.AddInstructors)
		manage.DELETE("/courses/:id/instructors/:instructorId", controllers.RemoveInstructor)

		manage.POST("/courses/:id/lessons", controllers.CreateLesson)
		manage.PUT("/courses/:id/lessons", controllers.ReplaceLessonsForCourse)
		manage.PUT("/lessons/:id", controllers.UpdateLesson)
		manage.DELETE("/lessons/:id", controllers.DeleteLesson)

		manage.POST("/lessons/:id/test", controllers.CreateTestForLesson)
		manage.PUT("/tests/:id", controllers.UpdateTest)
		manage.DELETE("/tests/:id", controllers.DeleteTest)
		manage.POST("/tests/:id/questions", controllers.CreateQuestion)
		manage.PUT("/tests/:id/questions", controllers.ReplaceQuestionsForTest)
		manage.PUT("/questions/:id", controllers.UpdateQuestion)
		manage.DELETE("/questions/:id", controllers.DeleteQuestion)
		manage.POST("/questions/:id/options", controllers.AddOptions)
		manage.DELETE("/questions/:id/options/:optionId", controllers.RemoveOption)

		manage.POST("/lessons/:id/submissions", controllers.SaveSubmission)
		manage.DELETE("/lessons/:id/submissions/:studentId", controllers.DeleteSubmission)
	}

	// Route chỉ dành cho admin
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRoles(string(models.RoleAdmin)))
	{
		admin.POST("/instructors", controllers.AdminCreateInstructor)
		admin.GET("/users", controllers.GetUsers)
		admin.GET("/users/:id", controllers.GetUserByID)
		admin.PUT("/users/:id/role", controllers.AssignRole)
		admin.POST("/courses/:id/students", controllers.AddStudentToCourse)
	}

	return r
}
