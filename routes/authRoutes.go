package routes

import (
	"fixmycity-be/controllers"
	"fixmycity-be/middlewares"
	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/logout", controllers.LogoutUser)
		auth.GET("/me",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleCitizen, models.RoleAdmin, models.RoleCrew),
			controllers.GetMe)
	}
}
