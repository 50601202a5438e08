package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecocollect/services"
	"ecocollect/utils"
)

type AuthController struct {
	authService *services.AuthService
	validator   *validator.Validate
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
		validator:   validator.New(),
	}
}

// SignIn handles POST /api/auth/signin for all three roles.
func (ac *AuthController) SignIn(c *gin.Context) {
	var request SignInRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := ac.validator.Struct(request); err != nil {
		utils.BadRequestResponse(c, "Email and password are required", err.Error())
		return
	}

	result, err := ac.authService.SignIn(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondServiceError(c, "Sign-in failed", err)
		return
	}

	utils.SuccessResponse(c, "Authentication successful", result)
}

// Me handles GET /api/auth/me for an authenticated caller.
func (ac *AuthController) Me(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", gin.H{
		"id":    identity.ID.Hex(),
		"email": identity.Email,
		"name":  identity.Name,
		"role":  identity.Role,
	})
}
