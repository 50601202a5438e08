package routes

import (
	"github.com/gin-gonic/gin"

	"ecocollect/controllers"
	"ecocollect/middleware"
	"ecocollect/models"
)

func RegisterRequestRoutes(rg *gin.RouterGroup, container *ServiceContainer, maxProofSize int64) {
	requestController := controllers.NewRequestController(container.RequestService, maxProofSize)

	requests := rg.Group("/recycling-requests")
	requests.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		requests.POST("", middleware.RequireRole(models.RoleUser), requestController.Create)
		requests.GET("", requestController.List)
		requests.GET("/:id", requestController.Get)
		requests.PATCH("/:id", requestController.Update)
		requests.DELETE("", requestController.Delete)

		// Lifecycle transitions, forward-only.
		requests.PATCH("/:id/approve", middleware.RequireRole(models.RoleAdmin), requestController.Approve)
		requests.PATCH("/:id/collect", middleware.RequireRole(models.RoleReceiver), requestController.Collect)
		requests.PATCH("/:id/receive", middleware.RequireRole(models.RoleAdmin), requestController.Receive)
	}
}
