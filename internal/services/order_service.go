// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/authz"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/payment"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	gateway             payment.Gateway
	notificationService *NotificationService
	signingSecret       []byte
}

func NewOrderService(db *gorm.DB, gateway payment.Gateway, notificationService *NotificationService, signingSecret string) *OrderService {
	return &OrderService{
		db:                  db,
		gateway:             gateway,
		notificationService: notificationService,
		signingSecret:       []byte(signingSecret),
	}
}

// Checkout converts the user's active cart into a pending order. The cart
// total is snapshotted into the order and the cart is retired with a
// conditional update, so two concurrent checkouts of the same cart produce
// exactly one order.
func (s *OrderService) Checkout(user *models.User) (*models.Order, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot check out")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ? AND is_active = ?", user.ID, true).
			Preload("Items").Preload("Items.Product").
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Wrap(apperrors.ErrEmptyCart, "no active cart")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(cart.Items) == 0 {
			return apperrors.Wrap(apperrors.ErrEmptyCart, "cart has no items")
		}

		total := cart.TotalPrice()

		order = &models.Order{
			UserID:        &user.ID,
			CartID:        &cart.ID,
			TransactionID: uuid.New(),
			TotalAmount:   total,
			Status:        models.OrderStatusPending,
		}
		order.Sign(s.signingSecret)

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Retire the cart. If a concurrent checkout got there first the
		// update hits zero rows and the whole transaction rolls back.
		result := tx.Model(&models.Cart{}).
			Where("id = ? AND is_active = ?", cart.ID, true).
			Update("is_active", false)
		if result.Error != nil {
			return fmt.Errorf("failed to retire cart: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.Wrap(apperrors.ErrConflict, "cart was already checked out")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        user.ID,
		"transaction_id": order.TransactionID,
		"total":          order.TotalAmount.StringFixed(2),
	}).Info("Order created")

	return order, nil
}

// SubmitPayment runs the payment attempt for a pending order. The order moves
// to processing before the gateway is consulted, then to completed or
// cancelled on the outcome. Both final states are terminal; re-submission
// against a non-pending order is rejected.
func (s *OrderService) SubmitPayment(ctx context.Context, user *models.User, transactionID uuid.UUID, card payment.CardDetails) (*models.Order, error) {
	order, err := s.getOwnedOrder(transactionID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := ensureAwaitingPayment(order); err != nil {
		return nil, err
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	// Claim the order. A concurrent submission loses here and never
	// reaches the gateway.
	result := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Update("status", models.OrderStatusProcessing)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to claim order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.Wrap(apperrors.ErrAlreadyFinalized, "order was already submitted")
	}
	order.Status = models.OrderStatusProcessing

	outcome, err := s.gateway.Authorize(ctx, order, card)
	if err != nil {
		logrus.WithError(err).WithField("transaction_id", order.TransactionID).
			Warn("Payment gateway error")
	}

	finalStatus := models.OrderStatusCancelled
	if err == nil && outcome == payment.OutcomeApproved {
		finalStatus = models.OrderStatusCompleted
	}

	if err := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusProcessing).
		Update("status", finalStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize order: %w", err)
	}
	order.Status = finalStatus

	if s.notificationService != nil {
		if err := s.notificationService.NotifyOrderStatus(user.ID, order); err != nil {
			logrus.WithError(err).Warn("Failed to record order notification")
		}
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": order.TransactionID,
		"status":         order.Status,
	}).Info("Payment resolved")

	return order, nil
}

// GetOrder returns an order by transaction id, scoped to the owner. An order
// belonging to someone else is indistinguishable from a missing one.
func (s *OrderService) GetOrder(transactionID uuid.UUID, userID uuid.UUID) (*models.Order, error) {
	return s.getOwnedOrder(transactionID, userID)
}

func (s *OrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// GetReceipt renders the downloadable receipt for a completed order.
func (s *OrderService) GetReceipt(transactionID uuid.UUID, user *models.User) ([]byte, error) {
	order, err := s.getOwnedOrder(transactionID, user.ID)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusCompleted {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "no receipt for order in state %s", order.Status)
	}

	return renderReceiptHTML(order, user.Username), nil
}

// VerifyReceipt recomputes the order's signature and reports whether the
// stored (transaction id, amount) pair is untampered.
func (s *OrderService) VerifyReceipt(transactionID uuid.UUID, userID uuid.UUID) (bool, error) {
	order, err := s.getOwnedOrder(transactionID, userID)
	if err != nil {
		return false, err
	}
	return order.VerifySignature(s.signingSecret), nil
}

// ResolveStuckProcessing cancels orders abandoned mid-payment, e.g. when the
// process died between claiming the order and recording the outcome. Invoked
// periodically from the server loop.
func (s *OrderService) ResolveStuckProcessing(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result := s.db.Model(&models.Order{}).
		Where("status = ? AND updated_at < ?", models.OrderStatusProcessing, cutoff).
		Update("status", models.OrderStatusCancelled)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to resolve stuck orders: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Warn("Cancelled stuck processing orders")
	}

	return result.RowsAffected, nil
}

// ensureAwaitingPayment rejects payment submission against any order that has
// left the pending state. Processing counts: a claimed order is in flight and
// must not reach the gateway twice.
func ensureAwaitingPayment(order *models.Order) error {
	if order.Status != models.OrderStatusPending {
		return apperrors.Wrap(apperrors.ErrAlreadyFinalized, "order is %s", order.Status)
	}
	return nil
}

func (s *OrderService) getOwnedOrder(transactionID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("transaction_id = ? AND user_id = ?", transactionID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "order %s", transactionID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func renderReceiptHTML(order *models.Order, username string) []byte {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt %s</title></head>
<body>
  <h1>Floreal Paris</h1>
  <h2>Payment Receipt</h2>
  <table>
    <tr><td>Customer</td><td>%s</td></tr>
    <tr><td>Transaction ID</td><td>%s</td></tr>
    <tr><td>Total amount</td><td>%s</td></tr>
    <tr><td>Date</td><td>%s</td></tr>
    <tr><td>Status</td><td>%s</td></tr>
  </table>
  <p>Signature: <code>%s</code></p>
</body>
</html>
`,
		order.TransactionID,
		username,
		order.TransactionID,
		order.TotalAmount.StringFixed(2),
		order.UpdatedAt.Format("2006-01-02 15:04:05"),
		order.Status,
		order.DigitalSignature,
	)
	return []byte(html)
}
