package routes

import (
	"github.com/gin-gonic/gin"

	"ecocollect/controllers"
	"ecocollect/middleware"
)

func RegisterAuthRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	authController := controllers.NewAuthController(container.AuthService)

	auth := rg.Group("/auth")
	{
		auth.POST("/signin", middleware.RateLimit(container.AuthLimiter), authController.SignIn)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(container.JWTSecret))
		{
			protected.GET("/me", authController.Me)
		}
	}
}
