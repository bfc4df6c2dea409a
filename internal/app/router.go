package app

import (
	"courtside_backend/docs"
	"courtside_backend/internal/config"
	"courtside_backend/internal/middleware"
	"courtside_backend/internal/model"
	"courtside_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerCoachRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/sports", c.skill.ListSports)
		public.GET("/skills", c.skill.ListSkills)
		public.GET("/skills/:id", c.skill.GetSkill)
		public.GET("/lessons", c.video.ListLessons)
		public.GET("/lessons/:id", c.video.GetLesson)
		public.GET("/quizzes", c.quiz.ListQuizzes)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)
	rg.GET("/reviews/:id", c.video.GetReview)

	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/skills", c.skill.ListSkillsForStudent)

		student.GET("/quizzes/:id", c.quiz.GetQuizForStudent)
		student.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
		student.GET("/submissions", c.quiz.ListMySubmissions)

		student.GET("/curricula", c.curriculum.ListMyCurricula)
		student.GET("/curricula/:id/next", c.curriculum.NextItem)
		student.POST("/curricula/:id/items/:itemId/start", c.curriculum.StartItem)
		student.POST("/curricula/:id/items/:itemId/complete", c.curriculum.CompleteItem)

		student.POST("/reviews", c.video.SubmitReview)
		student.GET("/reviews", c.video.ListMyReviews)
	}
}

func (a *App) registerCoachRoutes(rg *gin.RouterGroup, c *controllers) {
	coach := rg.Group("/coach")
	coach.Use(middleware.RoleMiddleware(model.Coach))
	{
		coach.GET("/students", c.user.ListStudents)

		coach.POST("/skills", c.skill.CreateSkill)
		coach.PUT("/skills/:id", c.skill.UpdateSkill)
		coach.DELETE("/skills/:id", c.skill.DeleteSkill)

		coach.POST("/lessons", c.video.UploadLesson)

		coach.POST("/quizzes", c.quiz.CreateQuiz)
		coach.GET("/quizzes/:id", c.quiz.GetQuiz)
		coach.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		coach.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		coach.GET("/quizzes/:id/submissions", c.quiz.ListQuizSubmissions)

		coach.POST("/questions", c.quiz.CreateQuestion)
		coach.PUT("/questions/:id", c.quiz.UpdateQuestion)
		coach.DELETE("/questions/:id", c.quiz.DeleteQuestion)

		coach.POST("/curricula", c.curriculum.CreateCurriculum)
		coach.GET("/curricula", c.curriculum.ListCoachCurricula)
		coach.DELETE("/curricula/:id", c.curriculum.DeleteCurriculum)

		coach.GET("/reviews/pending", c.video.ListPendingReviews)
		coach.POST("/reviews/:id/notes", c.video.AddReviewNote)
	}
}
