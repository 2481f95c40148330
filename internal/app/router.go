package app

import (
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要会话的页面
	authGroup := router.Group("/")
	authGroup.Use(middleware.SessionMiddleware(a.Sessions, a.Config.Session.CookieName))
	{
		a.registerInterviewRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.GET("/", c.auth.LoginPage)
	router.POST("/register", c.auth.Register)
	router.POST("/login", c.auth.Login)
	router.GET("/logout", c.auth.Logout)
}

func (a *App) registerInterviewRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/dashboard", c.dashboard.Dashboard)
	rg.GET("/setup/:domain", c.dashboard.Setup)

	// 简历
	rg.POST("/analyze_resume", c.resume.AnalyzeResume)

	// 面试
	rg.GET("/interview", c.interview.InterviewRoom)
	rg.POST("/submit_interview", c.interview.SubmitInterview)
	rg.GET("/results", c.interview.Results)
}
