package routes

import (
	"github.com/gin-gonic/gin"

	"ecocollect/controllers"
	"ecocollect/middleware"
)

func RegisterNotificationRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	notificationController := controllers.NewNotificationController(container.NotificationService, container.Hub)

	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		notifications.GET("", notificationController.List)
		notifications.POST("", notificationController.Send)
		notifications.PATCH("/:id/read", notificationController.MarkRead)
		notifications.GET("/ws", notificationController.Stream)
	}
}
