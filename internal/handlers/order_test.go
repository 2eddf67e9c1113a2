// internal/handlers/order_test.go
package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/payment"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type stubOrderService struct {
	order   *models.Order
	receipt []byte
	valid   bool
	err     error
}

func (s *stubOrderService) Checkout(user *models.User) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) SubmitPayment(ctx context.Context, user *models.User, transactionID uuid.UUID, card payment.CardDetails) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) GetOrder(transactionID, userID uuid.UUID) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	return nil, 0, s.err
}

func (s *stubOrderService) GetReceipt(transactionID uuid.UUID, user *models.User) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt, nil
}

func (s *stubOrderService) VerifyReceipt(transactionID, userID uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.valid, nil
}

func orderRoutes(svc *stubOrderService, user *models.User) func(*gin.Engine) {
	h := &OrderHandler{orderService: svc, authService: stubUserLoader{user: user}}
	return func(r *gin.Engine) {
		r.POST("/orders/checkout", h.Checkout)
		r.POST("/orders/:transaction_id/pay", h.SubmitPayment)
		r.GET("/orders/:transaction_id", h.GetOrder)
		r.GET("/orders/:transaction_id/receipt", h.DownloadReceipt)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{err: apperrors.Wrap(apperrors.ErrEmptyCart, "cart has no items")}

	w := serveAs(buyer, "POST", "/orders/checkout", orderRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_CART")
}

func TestCheckoutCreatesOrder(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{order: &models.Order{
		TransactionID: uuid.New(),
		Status:        models.OrderStatusPending,
	}}

	w := serveAs(buyer, "POST", "/orders/checkout", orderRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), svc.order.TransactionID.String())
}

func TestSubmitPaymentFinalizedOrder(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{err: apperrors.Wrap(apperrors.ErrAlreadyFinalized, "order is completed")}
	path := "/orders/" + uuid.New().String() + "/pay"

	w := serveAs(buyer, "POST", path, orderRoutes(svc, buyer), []byte(`{}`))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_FINALIZED")
}

func TestSubmitPaymentDeclinedCard(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{err: apperrors.Wrap(apperrors.ErrValidation, "card number must be 13 to 19 digits")}
	path := "/orders/" + uuid.New().String() + "/pay"

	w := serveAs(buyer, "POST", path, orderRoutes(svc, buyer), []byte(`{"card_number":"42"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetOrderNotFound(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{err: apperrors.Wrap(apperrors.ErrNotFound, "order missing")}
	path := "/orders/" + uuid.New().String()

	w := serveAs(buyer, "GET", path, orderRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestDownloadReceiptAsAttachment(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{receipt: []byte("<html>receipt</html>")}
	transactionID := uuid.New()
	path := "/orders/" + transactionID.String() + "/receipt"

	w := serveAs(buyer, "GET", path, orderRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), transactionID.String())
	assert.Equal(t, "<html>receipt</html>", w.Body.String())
}

func TestDownloadReceiptPendingOrder(t *testing.T) {
	buyer := testBuyer()
	svc := &stubOrderService{err: apperrors.Wrap(apperrors.ErrNotFound, "no receipt for order in state pending")}
	path := "/orders/" + uuid.New().String() + "/receipt"

	w := serveAs(buyer, "GET", path, orderRoutes(svc, buyer), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
