package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecocollect/services"
	"ecocollect/utils"
)

// identityFrom assembles the caller's identity from the values the auth
// middleware stored on the context.
func identityFrom(c *gin.Context) (services.Identity, bool) {
	accountID, exists := c.Get("accountId")
	if !exists {
		return services.Identity{}, false
	}
	id, ok := accountID.(primitive.ObjectID)
	if !ok {
		return services.Identity{}, false
	}

	return services.Identity{
		ID:    id,
		Role:  c.GetString("role"),
		Email: c.GetString("email"),
		Name:  c.GetString("name"),
	}, true
}

// respondServiceError maps service sentinel errors onto the HTTP taxonomy.
// Unclassified errors become a generic 500; the detail goes to the log only.
func respondServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, "Validation failed", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "You are not allowed to perform this action")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Record not found")
	case errors.Is(err, services.ErrEmailExists):
		utils.ConflictResponse(c, "Email already exists", nil)
	case errors.Is(err, services.ErrStatusConflict):
		utils.ConflictResponse(c, "Request is not in a state that allows this transition", nil)
	default:
		utils.LogError(action, err)
		utils.InternalServerErrorResponse(c, "Something went wrong")
	}
}

func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid id", "id must be a valid object id")
		return primitive.NilObjectID, false
	}
	return id, true
}
