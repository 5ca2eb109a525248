package routes

import (
	"fixmycity-be/controllers"
	"fixmycity-be/middlewares"
	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin-only routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/crews", controllers.GetCrews)
	}
}
