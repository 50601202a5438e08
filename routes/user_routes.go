package routes

import (
	"github.com/gin-gonic/gin"

	"ecocollect/controllers"
	"ecocollect/middleware"
	"ecocollect/models"
)

func RegisterUserRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	userController := controllers.NewUserController(container.UserService)

	users := rg.Group("/users")
	{
		// Public registration, throttled alongside sign-in.
		users.POST("", middleware.RateLimit(container.AuthLimiter), userController.Register)

		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(container.JWTSecret))
		{
			protected.GET("", middleware.RequireRole(models.RoleAdmin), userController.List)
			protected.PATCH("/:id", userController.Update)
		}
	}
}
