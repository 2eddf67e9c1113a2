// internal/handlers/cart_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
)

type stubCartService struct {
	cart     *models.Cart
	view     *services.CartView
	err      error
	gotDelta int
}

func (s *stubCartService) ViewCart(user *models.User) (*services.CartView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubCartService) AddItem(user *models.User, req *services.AddToCartRequest) (*models.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) AdjustItem(user *models.User, productID uuid.UUID, delta int) (*models.Cart, error) {
	s.gotDelta = delta
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) RemoveItem(user *models.User, productID uuid.UUID) (*models.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) ClearCart(user *models.User) (*models.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func cartRoutes(svc *stubCartService, user *models.User) func(*gin.Engine) {
	h := &CartHandler{cartService: svc, authService: stubUserLoader{user: user}}
	return func(r *gin.Engine) {
		r.GET("/cart", h.GetCart)
		r.POST("/cart/items", h.AddItem)
		r.PATCH("/cart/items/:product_id", h.AdjustItem)
		r.DELETE("/cart/items/:product_id", h.RemoveItem)
	}
}

func TestGetCartReportsRemovedProducts(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{view: &services.CartView{
		Cart:            &models.Cart{},
		RemovedProducts: []string{"Red Roses"},
	}}

	w := serveAs(buyer, "GET", "/cart", cartRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "removed_products")
	assert.Contains(t, w.Body.String(), "Red Roses")
}

func TestAddItemForbidden(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{err: apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")}
	body := []byte(`{"product_id":"` + uuid.New().String() + `","quantity":1}`)

	w := serveAs(buyer, "POST", "/cart/items", cartRoutes(svc, buyer), body)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestAddItemVanishedProduct(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{err: apperrors.Wrap(apperrors.ErrNotFound, "product gone")}
	body := []byte(`{"product_id":"` + uuid.New().String() + `","quantity":1}`)

	w := serveAs(buyer, "POST", "/cart/items", cartRoutes(svc, buyer), body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestAdjustItemRejectsNonUnitDelta(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{cart: &models.Cart{}}
	path := "/cart/items/" + uuid.New().String()

	for _, body := range []string{`{"delta":0}`, `{"delta":-100}`, `{"delta":2}`} {
		w := serveAs(buyer, "PATCH", path, cartRoutes(svc, buyer), []byte(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
	assert.Zero(t, svc.gotDelta, "out-of-range delta must not reach the service")
}

func TestAdjustItemAcceptsUnitDelta(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{cart: &models.Cart{}}
	path := "/cart/items/" + uuid.New().String()

	w := serveAs(buyer, "PATCH", path, cartRoutes(svc, buyer), []byte(`{"delta":-1}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, svc.gotDelta)
}

func TestAdjustItemMissingLine(t *testing.T) {
	buyer := testBuyer()
	svc := &stubCartService{err: apperrors.Wrap(apperrors.ErrNotFound, "not in the cart")}
	path := "/cart/items/" + uuid.New().String()

	w := serveAs(buyer, "PATCH", path, cartRoutes(svc, buyer), []byte(`{"delta":1}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
