// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/i18n"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	authService         *services.AuthService
}

func NewNotificationHandler(notificationService *services.NotificationService, authService *services.AuthService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authService:         authService,
	}
}

// GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListForUser(user.ID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(user.ID, notificationID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyNotificationRead),
	})
}
