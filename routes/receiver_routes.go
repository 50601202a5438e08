package routes

import (
	"github.com/gin-gonic/gin"

	"ecocollect/controllers"
	"ecocollect/middleware"
	"ecocollect/models"
)

func RegisterReceiverRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	receiverController := controllers.NewReceiverController(container.ReceiverService)

	receivers := rg.Group("/receivers")
	{
		receivers.POST("", middleware.RateLimit(container.AuthLimiter), receiverController.Register)

		protected := receivers.Group("")
		protected.Use(middleware.AuthMiddleware(container.JWTSecret))
		{
			protected.GET("", receiverController.List)
			protected.PATCH("/:id", receiverController.Update)
			protected.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), receiverController.Delete)
		}
	}
}
