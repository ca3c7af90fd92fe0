package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/digipratibha/stuportal/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Resources *ResourceHandler
	AI        *AIHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/signup", deps.Auth.Signup)
	api.POST("/auth/login", deps.Auth.Login)

	// Chatbot stays public; everything else under /ai requires a bearer.
	api.POST("/ai/chatbot", deps.AI.Chatbot)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/resources", deps.Resources.Create)
	authGroup.GET("/resources", deps.Resources.List)
	authGroup.POST("/ai/career-recommendation", deps.AI.CareerRecommendation)
	authGroup.GET("/ai/search", deps.AI.Search)
	authGroup.POST("/ai/analyze-project", deps.AI.AnalyzeProject)

	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	adminGroup.GET("/ai-summary", deps.AI.AdminSummary)
}
