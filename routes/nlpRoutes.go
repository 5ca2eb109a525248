package routes

import (
	"fixmycity-be/controllers"
	"fixmycity-be/middlewares"
	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
)

// NlpRoutes sets up the text-analysis passthrough routes
func NlpRoutes(r *gin.Engine) {
	nlp := r.Group("/api/nlp")
	{
		nlp.POST("/analyze", middlewares.AuthMiddleware(), controllers.AnalyzeComplaintText)
		nlp.POST("/classify", middlewares.AuthMiddleware(), controllers.ClassifyComplaintText)
		nlp.POST("/summarize", middlewares.AuthMiddleware(), controllers.SummarizeComplaintText)
		nlp.POST("/urgency", middlewares.AuthMiddleware(), controllers.DetectComplaintUrgency)
		nlp.POST("/batch",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			controllers.BatchAnalyzeText)
		nlp.GET("/status", controllers.NlpStatus)
	}
}
