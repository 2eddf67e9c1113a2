// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a persisted per-user notice. Cart cleanup writes one listing
// the products dropped from the cart, so the warning survives the request that
// triggered it.
type Notification struct {
	BaseModel
	UserID  uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Type    string     `json:"type" gorm:"size:50;not null"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Message string     `json:"message" gorm:"type:text;not null"`
	Data    JSONB      `json:"data,omitempty" gorm:"type:jsonb"`
	ReadAt  *time.Time `json:"read_at"`
}

const (
	NotificationTypeCartItemsRemoved = "cart_items_removed"
	NotificationTypeOrderStatus      = "order_status"
)
