package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/controllers"
	"github.com/yigit/ssis/internal/middleware"
)

// Controllers groups the handlers mounted under /api
type Controllers struct {
	Auth    *controllers.AuthController
	College *controllers.CollegeController
	Program *controllers.ProgramController
	Student *controllers.StudentController
	User    *controllers.UserController
	Metrics *controllers.MetricsController
}

// SetupRouter configures all application routes. Reads are public, every
// mutation goes through the auth gate. Stored photos are served from uploadsDir.
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware, uploadsDir string) {
	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	api := router.Group("/api")
	api.GET("/home", controllers.Home)

	requireAuth := authMiddleware.RequireAuth()

	colleges := api.Group("/colleges")
	{
		colleges.GET("/", ctrl.College.GetAllColleges)
		colleges.GET("/:code", ctrl.College.GetCollege)
		colleges.POST("/", requireAuth, ctrl.College.CreateCollege)
		colleges.POST("/bulk-delete", requireAuth, ctrl.College.BulkDeleteColleges)
		colleges.PUT("/:code", requireAuth, ctrl.College.UpdateCollege)
		colleges.DELETE("/:code", requireAuth, ctrl.College.DeleteCollege)
	}

	programs := api.Group("/programs")
	{
		programs.GET("/", ctrl.Program.GetAllPrograms)
		programs.GET("/:code", ctrl.Program.GetProgram)
		programs.POST("/", requireAuth, ctrl.Program.CreateProgram)
		programs.POST("/bulk-delete", requireAuth, ctrl.Program.BulkDeletePrograms)
		programs.PUT("/:code", requireAuth, ctrl.Program.UpdateProgram)
		programs.DELETE("/:code", requireAuth, ctrl.Program.DeleteProgram)
	}

	students := api.Group("/students")
	{
		students.GET("/", ctrl.Student.GetAllStudents)
		students.GET("/:idNo", ctrl.Student.GetStudent)
		students.POST("/", requireAuth, ctrl.Student.CreateStudent)
		students.POST("/bulk-delete", requireAuth, ctrl.Student.BulkDeleteStudents)
		students.POST("/:idNo/photo", requireAuth, ctrl.Student.UploadStudentPhoto)
		students.PUT("/:idNo", requireAuth, ctrl.Student.UpdateStudent)
		students.DELETE("/:idNo", requireAuth, ctrl.Student.DeleteStudent)
	}

	users := api.Group("/users")
	{
		users.GET("/", ctrl.User.GetAllUsers)
		users.DELETE("/:username", requireAuth, ctrl.User.DeleteUser)
	}

	metrics := api.Group("/metrics")
	{
		metrics.GET("/counts", ctrl.Metrics.Counts)
		metrics.GET("/daily", ctrl.Metrics.Daily)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/signup", ctrl.Auth.Signup)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.GET("/me", requireAuth, ctrl.Auth.Me)
	}
}
