// internal/handlers/chat.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/i18n"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
	authService *services.AuthService
}

func NewChatHandler(chatService *services.ChatService, authService *services.AuthService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		authService: authService,
	}
}

// POST /chats
func (h *ChatHandler) StartChat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	room, err := h.chatService.StartChat(user, req.ProductID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"chat_room": room})
}

// GET /chats
func (h *ChatHandler) ListRooms(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	rooms, total, err := h.chatService.ListRooms(user, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(rooms, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /chats/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	messages, total, err := h.chatService.ListMessages(user, roomID, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(messages, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	roomID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	message, err := h.chatService.SendMessage(user, roomID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMessageSent),
		"data":    message,
	})
}
