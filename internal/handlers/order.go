// internal/handlers/order.go
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/i18n"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/payment"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

// orderManager is the slice of OrderService this handler consumes.
type orderManager interface {
	Checkout(user *models.User) (*models.Order, error)
	SubmitPayment(ctx context.Context, user *models.User, transactionID uuid.UUID, card payment.CardDetails) (*models.Order, error)
	GetOrder(transactionID, userID uuid.UUID) (*models.Order, error)
	GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error)
	GetReceipt(transactionID uuid.UUID, user *models.User) ([]byte, error)
	VerifyReceipt(transactionID, userID uuid.UUID) (bool, error)
}

type OrderHandler struct {
	orderService orderManager
	authService  userLoader
}

func NewOrderHandler(orderService *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authService:  authService,
	}
}

// POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	order, err := h.orderService.Checkout(user)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
	})
}

// POST /orders/:transaction_id/pay
func (h *OrderHandler) SubmitPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	transactionID, ok := parseUUIDParam(c, "transaction_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var card payment.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.SubmitPayment(c.Request.Context(), user, transactionID, card)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyPaymentDeclined)
	if order.Status == models.OrderStatusCompleted {
		message = i18n.T(lang, i18n.KeyPaymentSuccess)
	}

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"order":   order,
	})
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.GetUserOrders(user.ID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /orders/:transaction_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	transactionID, ok := parseUUIDParam(c, "transaction_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(transactionID, user.ID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// GET /orders/:transaction_id/receipt
func (h *OrderHandler) DownloadReceipt(c *gin.Context) {
	transactionID, ok := parseUUIDParam(c, "transaction_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	receipt, err := h.orderService.GetReceipt(transactionID, user)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="receipt_%s.html"`, transactionID))
	c.Data(http.StatusOK, "text/html; charset=utf-8", receipt)
}

// GET /orders/:transaction_id/verify
func (h *OrderHandler) VerifyReceipt(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	transactionID, ok := parseUUIDParam(c, "transaction_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	valid, err := h.orderService.VerifyReceipt(transactionID, user.ID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyReceiptSignatureInvalid)
	if valid {
		message = i18n.T(lang, i18n.KeyReceiptSignatureValid)
	}

	utils.SuccessResponse(c, gin.H{
		"valid":   valid,
		"message": message,
	})
}
