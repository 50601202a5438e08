package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecocollect/services"
	"ecocollect/utils"
)

type UserController struct {
	userService *services.UserService
	validator   *validator.Validate
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
		validator:   validator.New(),
	}
}

// Register handles POST /api/users (public registration).
func (uc *UserController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := uc.validator.Struct(input); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err.Error())
		return
	}

	user, err := uc.userService.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, "User registration failed", err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", user)
}

// List handles GET /api/users (admin only, enforced by route middleware).
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.userService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "Failed to list users", err)
		return
	}

	message := "Users retrieved successfully"
	if len(users) == 0 {
		message = "No users found"
	}
	utils.SuccessResponse(c, message, users)
}

// Update handles PATCH /api/users/:id (admin, or the user themself).
func (uc *UserController) Update(c *gin.Context) {
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

	if err := uc.validator.Struct(input); err != nil {
		utils.BadRequestResponse(c, "Validation failed", err.Error())
		return
	}

	user, err := uc.userService.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		respondServiceError(c, "User update failed", err)
		return
	}

	utils.SuccessResponse(c, "User updated successfully", user)
}
