// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SellerID    uuid.UUID       `json:"seller_id" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"size:200;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status      ProductStatus   `json:"status" gorm:"type:varchar(20);default:'in_stock'"`
	IsActive    bool            `json:"is_active" gorm:"default:true;index"`
	Views       int64           `json:"views" gorm:"default:0"`
	ImageURL    string          `json:"image_url" gorm:"size:512"`
	Tags        pq.StringArray  `json:"tags" gorm:"type:text[]"`

	// Relationships
	Seller  User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Review is unique per (product, user); the composite index closes the
// duplicate-insert race at the store, not in application code.
type Review struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
