// internal/models/chat.go
package models

import (
	"github.com/google/uuid"
)

type ChatRoom struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_product_buyer"`
	BuyerID   uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_product_buyer"`
	SellerID  uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Product  Product   `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Buyer    User      `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Seller   User      `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ChatRoomID;constraint:OnDelete:CASCADE"`
}

// HasParticipant reports whether the user is the buyer or seller of the room.
func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	return r.BuyerID == userID || r.SellerID == userID
}

type Message struct {
	BaseModel
	ChatRoomID uuid.UUID `json:"chat_room_id" gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `json:"sender_id" gorm:"type:uuid;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Read       bool      `json:"read" gorm:"default:false"`

	// Relationships
	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
