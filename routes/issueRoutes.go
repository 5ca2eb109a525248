package routes

import (
	"fixmycity-be/controllers"
	"fixmycity-be/middlewares"
	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue lifecycle routes. Each route declares its
// permitted-role set once; ownership checks happen inside the controllers.
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues", middlewares.AuthMiddleware())
	{
		issue.POST("",
			middlewares.RequireRoles(models.RoleCitizen),
			middlewares.IssueRateLimiter(10),
			controllers.CreateIssue)
		issue.GET("",
			middlewares.RequireRoles(models.RoleAdmin),
			controllers.GetAllIssues)
		issue.GET("/my",
			middlewares.RequireRoles(models.RoleCitizen),
			controllers.GetMyIssues)
		issue.GET("/assigned",
			middlewares.RequireRoles(models.RoleCrew),
			controllers.GetAssignedIssues)
		issue.GET("/:id",
			middlewares.RequireRoles(models.RoleCitizen, models.RoleAdmin, models.RoleCrew),
			controllers.GetIssue)
		issue.PUT("/:id/assign",
			middlewares.RequireRoles(models.RoleAdmin),
			controllers.AssignIssue)
		issue.PUT("/:id/status",
			middlewares.RequireRoles(models.RoleCrew),
			controllers.UpdateIssueStatus)
	}
}
