// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a user's current shopping session. At most one cart per user has
// IsActive=true; the partial unique index created in database.createIndexes
// backs that invariant. Checkout flips the flag and a fresh cart is created
// lazily on next access.
type Cart struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	IsActive bool      `json:"is_active" gorm:"default:true"`

	// Relationships
	User  User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TotalItems sums quantities over the loaded line items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice aggregates live product pricing over the loaded line items. This
// is for display only; checkout snapshots the total into the order.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CartItem is unique per (cart, product); repeated adds accumulate quantity.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
