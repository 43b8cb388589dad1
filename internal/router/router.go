package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/handlers"
	"github.com/studyhub-dev/studyhub/internal/mailer"
	"github.com/studyhub-dev/studyhub/internal/middleware"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/types"
	"github.com/studyhub-dev/studyhub/internal/weather"
)

func NewRouter(gormDB *gorm.DB, mail mailer.Sender) *gin.Engine {
	users := repositories.NewUserRepository(gormDB)
	courses := repositories.NewCourseRepository(gormDB)
	assignments := repositories.NewAssignmentRepository(gormDB)
	projects := repositories.NewProjectRepository(gormDB)

	courseService := services.NewCourseService(courses)
	assignmentService := services.NewAssignmentService(assignments, courses)
	projectService := services.NewProjectService(projects, users, mail)
	dashboardService := services.NewDashboardService(courses, assignments, projects)

	authHandler := handlers.NewAuthHandler(users, mail)
	courseHandler := handlers.NewCourseHandler(courseService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	projectHandler := handlers.NewProjectHandler(projectService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, users, weather.NewClientFromEnv())
	socketHandler := handlers.NewProjectSocketHandler(projects)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(users)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", authRequired, socketHandler.Serve)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.PATCH("/me", authRequired, authHandler.UpdateMe)
		}

		coursesGroup := api.Group("/courses", authRequired)
		{
			coursesGroup.GET("", courseHandler.List)
			coursesGroup.POST("", courseHandler.Create)
			coursesGroup.GET("/:course_id", courseHandler.Get)
			coursesGroup.PATCH("/:course_id", courseHandler.Update)
			coursesGroup.DELETE("/:course_id", courseHandler.Delete)
			coursesGroup.GET("/:course_id/assignments", assignmentHandler.ListByCourse)
		}

		assignmentsGroup := api.Group("/assignments", authRequired)
		{
			assignmentsGroup.GET("", assignmentHandler.List)
			assignmentsGroup.POST("", assignmentHandler.Create)
			assignmentsGroup.GET("/upcoming", assignmentHandler.ListUpcoming)
			assignmentsGroup.GET("/overdue", assignmentHandler.ListOverdue)
			assignmentsGroup.GET("/:assignment_id", assignmentHandler.Get)
			assignmentsGroup.PATCH("/:assignment_id", assignmentHandler.Update)
			assignmentsGroup.PATCH("/:assignment_id/status", assignmentHandler.UpdateStatus)
			assignmentsGroup.DELETE("/:assignment_id", assignmentHandler.Delete)
		}

		projectsGroup := api.Group("/projects", authRequired)
		{
			projectsGroup.GET("", projectHandler.List)
			projectsGroup.POST("", projectHandler.Create)
			projectsGroup.GET("/:project_id", projectHandler.Get)
			projectsGroup.PATCH("/:project_id", projectHandler.Update)
			projectsGroup.DELETE("/:project_id", projectHandler.Delete)

			projectsGroup.POST("/:project_id/members", projectHandler.AddMember)
			projectsGroup.DELETE("/:project_id/members/:user_id", projectHandler.RemoveMember)

			projectsGroup.POST("/:project_id/tasks", projectHandler.AddTask)
			projectsGroup.PATCH("/:project_id/tasks/:task_id/status", projectHandler.UpdateTaskStatus)
			projectsGroup.DELETE("/:project_id/tasks/:task_id", projectHandler.DeleteTask)
		}

		api.GET("/dashboard", authRequired, dashboardHandler.Get)
	}

	return r
}
