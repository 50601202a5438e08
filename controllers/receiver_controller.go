package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecocollect/services"
	"ecocollect/utils"
)

type ReceiverController struct {
	receiverService *services.ReceiverService
	validator       *validator.Validate
}

func NewReceiverController(receiverService *services.ReceiverService) *ReceiverController {
	return &ReceiverController{
		receiverService: receiverService,
		validator:       validator.New(),
	}
}

// Register handles POST /api/receivers (public registration).
func (rc *ReceiverController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := rc.validator.Struct(input); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err.Error())
		return
	}

	receiver, err := rc.receiverService.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, "Receiver registration failed", err)
		return
	}

	utils.CreatedResponse(c, "Receiver registered successfully", receiver)
}

// List handles GET /api/receivers for any authenticated caller: users pick
// a receiver to message, admins assign receivers to requests.
func (rc *ReceiverController) List(c *gin.Context) {
	receivers, err := rc.receiverService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "Failed to list receivers", err)
		return
	}

	message := "Receivers retrieved successfully"
	if len(receivers) == 0 {
		message = "No receivers found"
	}
	utils.SuccessResponse(c, message, receivers)
}

// Update handles PATCH /api/receivers/:id (admin, or the receiver themself).
func (rc *ReceiverController) Update(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var input services.AccountUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := rc.validator.Struct(input); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err.Error())
		return
	}

	receiver, err := rc.receiverService.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		respondServiceError(c, "Receiver update failed", err)
		return
	}

	utils.SuccessResponse(c, "Receiver updated successfully", receiver)
}

// Delete handles DELETE /api/receivers/:id (admin only).
func (rc *ReceiverController) Delete(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.receiverService.Delete(c.Request.Context(), identity, id); err != nil {
		respondServiceError(c, "Receiver deletion failed", err)
		return
	}

	utils.SuccessResponse(c, "Receiver removed", nil)
}
