package controllers

import (
	"github.com/gin-gonic/gin"

	"ecocollect/realtime"
	"ecocollect/services"
	"ecocollect/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
	hub                 *realtime.Hub
}

func NewNotificationController(notificationService *services.NotificationService, hub *realtime.Hub) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// List handles GET /api/notifications: the caller's own log, newest first.
func (nc *NotificationController) List(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	notifications, err := nc.notificationService.ListFor(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, "Failed to list notifications", err)
		return
	}

	utils.SuccessResponse(c, "Notifications retrieved successfully", notifications)
}

// Send handles POST /api/notifications (manual message to a user or
// receiver).
func (nc *NotificationController) Send(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var input services.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	notification, err := nc.notificationService.Send(c.Request.Context(), identity, input)
	if err != nil {
		respondServiceError(c, "Failed to send notification", err)
		return
	}

	utils.CreatedResponse(c, "Notification sent", notification)
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := nc.notificationService.MarkRead(c.Request.Context(), identity, id)
	if err != nil {
		respondServiceError(c, "Failed to mark notification as read", err)
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", notification)
}

// Stream handles GET /api/notifications/ws: live feed over websocket.
func (nc *NotificationController) Stream(c *gin.Context) {
	realtime.ServeWS(nc.hub, c)
}
