// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(userID uuid.UUID, notifType, title, message string, data models.JSONB) error {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"type":    notifType,
	}).Debug("Notification created")

	return nil
}

// NotifyCartItemsRemoved records which products were dropped from the user's
// cart during cleanup.
func (s *NotificationService) NotifyCartItemsRemoved(userID uuid.UUID, productTitles []string) error {
	titles := make([]interface{}, len(productTitles))
	for i, t := range productTitles {
		titles[i] = t
	}

	return s.Create(userID,
		models.NotificationTypeCartItemsRemoved,
		"Items removed from cart",
		fmt.Sprintf("The following items are no longer available and were removed from your cart: %s",
			strings.Join(productTitles, ", ")),
		models.JSONB{"removed_products": titles},
	)
}

func (s *NotificationService) NotifyOrderStatus(userID uuid.UUID, order *models.Order) error {
	return s.Create(userID,
		models.NotificationTypeOrderStatus,
		"Order status updated",
		fmt.Sprintf("Order %s is now %s", order.TransactionID, order.Status),
		models.JSONB{
			"transaction_id": order.TransactionID.String(),
			"status":         string(order.Status),
		},
	)
}

func (s *NotificationService) ListForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrNotFound, "notification %s", notificationID)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if notification.ReadAt != nil {
		return nil
	}

	now := time.Now()
	return s.db.Model(&notification).Update("read_at", &now).Error
}
