// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

// userLoader resolves a token subject to a full user record. Satisfied by
// AuthService.
type userLoader interface {
	GetUserByID(id uuid.UUID) (*models.User, error)
}

// currentUser loads the authenticated user from the request context. Writes
// the error response itself when the token subject is missing or stale.
func currentUser(c *gin.Context, users userLoader) (*models.User, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	user, err := users.GetUserByID(userID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	return user, true
}

// optionalUser is currentUser for routes behind OptionalAuth; absence is fine.
func optionalUser(c *gin.Context, users userLoader) *models.User {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}

	user, err := users.GetUserByID(userID)
	if err != nil {
		return nil
	}

	return user
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
