// internal/models/order.go
package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the immutable result of a checkout. TotalAmount is the cart total
// snapshotted at checkout time and never recomputed; DigitalSignature is an
// HMAC tamper-evidence tag over (TransactionID, TotalAmount), not a payment
// authorization proof.
type Order struct {
	BaseModel
	UserID           *uuid.UUID      `json:"user_id" gorm:"type:uuid;index"`
	CartID           *uuid.UUID      `json:"cart_id" gorm:"type:uuid"`
	TransactionID    uuid.UUID       `json:"transaction_id" gorm:"type:uuid;uniqueIndex;not null"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	DigitalSignature string          `json:"digital_signature" gorm:"size:64"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Cart *Cart `json:"cart,omitempty" gorm:"foreignKey:CartID"`
}

// ComputeSignature derives the HMAC-SHA256 tag over the transaction id and the
// fixed-point total, keyed with the server-held secret.
func (o *Order) ComputeSignature(secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(o.TransactionID.String() + o.TotalAmount.StringFixed(2)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign stores the signature on the order. Called exactly once, inside the
// checkout transaction.
func (o *Order) Sign(secret []byte) {
	o.DigitalSignature = o.ComputeSignature(secret)
}

// VerifySignature recomputes the HMAC and compares it to the stored value in
// constant time, so a receipt's (transaction_id, total_amount) pair can be
// proven untampered.
func (o *Order) VerifySignature(secret []byte) bool {
	expected := o.ComputeSignature(secret)
	return hmac.Equal([]byte(expected), []byte(o.DigitalSignature))
}

// IsFinalized reports whether the order is in a terminal state. No transition
// is permitted out of a terminal state.
func (o *Order) IsFinalized() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
