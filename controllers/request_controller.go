package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecocollect/services"
	"ecocollect/utils"
)

type RequestController struct {
	requestService *services.RequestService
	validator      *validator.Validate
	maxProofSize   int64
}

func NewRequestController(requestService *services.RequestService, maxProofSize int64) *RequestController {
	return &RequestController{
		requestService: requestService,
		validator:      validator.New(),
		maxProofSize:   maxProofSize,
	}
}

// Create handles POST /api/recycling-requests.
func (rc *RequestController) Create(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var input services.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := rc.validator.Struct(input); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err.Error())
		return
	}

	request, err := rc.requestService.Create(c.Request.Context(), identity, input)
	if err != nil {
		respondServiceError(c, "Request creation failed", err)
		return
	}

	utils.CreatedResponse(c, "Recycling request created", request)
}

// List handles GET /api/recycling-requests with the role-based filter.
func (rc *RequestController) List(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	requests, err := rc.requestService.List(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, "Failed to list recycling requests", err)
		return
	}

	message := "Recycling requests retrieved successfully"
	if len(requests) == 0 {
		message = "No recycling requests found"
	}
	utils.SuccessResponse(c, message, requests)
}

// Get handles GET /api/recycling-requests/:id.
func (rc *RequestController) Get(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	request, err := rc.requestService.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondServiceError(c, "Failed to fetch recycling request", err)
		return
	}

	utils.SuccessResponse(c, "Recycling request retrieved successfully", request)
}

// Update handles PATCH /api/recycling-requests/:id for detail fields.
// Lifecycle changes go through the approve/collect/receive routes.
func (rc *RequestController) Update(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	request, err := rc.requestService.UpdateDetails(c.Request.Context(), identity, id, input)
	if err != nil {
		respondServiceError(c, "Request update failed", err)
		return
	}

	utils.SuccessResponse(c, "Recycling request updated", request)
}

type ApproveRequest struct {
	AssignedReceiver string `json:"assignedReceiver" validate:"required"`
}

// Approve handles PATCH /api/recycling-requests/:id/approve (admin).
func (rc *RequestController) Approve(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var request ApproveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "A receiver must be selected", err.Error())
		return
	}

	updated, err := rc.requestService.Approve(c.Request.Context(), identity, id, request.AssignedReceiver)
	if err != nil {
		respondServiceError(c, "Request approval failed", err)
		return
	}

	utils.SuccessResponse(c, "Pickup request approved", updated)
}

// Collect handles PATCH /api/recycling-requests/:id/collect (assigned
// receiver, proof image mandatory).
func (rc *RequestController) Collect(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var input services.CollectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	updated, err := rc.requestService.Collect(c.Request.Context(), identity, id, input, rc.maxProofSize)
	if err != nil {
		respondServiceError(c, "Collection submission failed", err)
		return
	}

	utils.SuccessResponse(c, "Collection proof submitted", updated)
}

// Receive handles PATCH /api/recycling-requests/:id/receive (admin).
func (rc *RequestController) Receive(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	updated, err := rc.requestService.Receive(c.Request.Context(), identity, id)
	if err != nil {
		respondServiceError(c, "Recycler handover failed", err)
		return
	}

	utils.SuccessResponse(c, "Marked as received by recycler", updated)
}

// Delete handles DELETE /api/recycling-requests: bulk removal scoped to the
// caller's visibility.
func (rc *RequestController) Delete(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	deleted, err := rc.requestService.DeleteVisible(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, "Bulk request deletion failed", err)
		return
	}

	utils.SuccessResponse(c, fmt.Sprintf("%d recycling requests removed", deleted), nil)
}
