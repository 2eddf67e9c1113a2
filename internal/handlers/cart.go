// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/i18n"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

// cartManager is the slice of CartService this handler consumes.
type cartManager interface {
	ViewCart(user *models.User) (*services.CartView, error)
	AddItem(user *models.User, req *services.AddToCartRequest) (*models.Cart, error)
	AdjustItem(user *models.User, productID uuid.UUID, delta int) (*models.Cart, error)
	RemoveItem(user *models.User, productID uuid.UUID) (*models.Cart, error)
	ClearCart(user *models.User) (*models.Cart, error)
}

type CartHandler struct {
	cartService cartManager
	authService userLoader
}

func NewCartHandler(cartService *services.CartService, authService *services.AuthService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		authService: authService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	view, err := h.cartService.ViewCart(user)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	resp := gin.H{
		"cart":        view.Cart,
		"total_items": view.Cart.TotalItems(),
		"total_price": view.Cart.TotalPrice(),
	}
	if len(view.RemovedProducts) > 0 {
		resp["removed_products"] = view.RemovedProducts
		resp["warning"] = i18n.T(lang, i18n.KeyCartItemsRemoved)
	}

	utils.SuccessResponse(c, resp)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart, err := h.cartService.AddItem(user, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyCartItemAdded),
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// PATCH /cart/items/:product_id
func (h *CartHandler) AdjustItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required,oneof=-1 1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart, err := h.cartService.AdjustItem(user, productID, req.Delta)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(user, productID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyCartItemRemoved),
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	cart, err := h.cartService.ClearCart(user)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    cart,
	})
}
