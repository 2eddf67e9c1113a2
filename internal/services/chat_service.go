// internal/services/chat_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type ChatService struct {
	db *gorm.DB
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// StartChat opens (or returns the existing) conversation between a buyer and
// the seller of a product. Sellers cannot open a chat about their own product.
func (s *ChatService) StartChat(buyer *models.User, productID uuid.UUID) (*models.ChatRoom, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", productID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.SellerID == buyer.ID {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "cannot start a chat about your own product")
	}

	var room models.ChatRoom
	err := s.db.Where("product_id = ? AND buyer_id = ?", productID, buyer.ID).First(&room).Error
	if err == nil {
		return s.loadRoom(room.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	room = models.ChatRoom{
		ProductID: productID,
		BuyerID:   buyer.ID,
		SellerID:  product.SellerID,
	}
	if err := s.db.Create(&room).Error; err != nil {
		if apperrors.IsUniqueViolation(err, "idx_chat_rooms_product_buyer") {
			// Concurrent open of the same conversation; reuse it.
			if err := s.db.Where("product_id = ? AND buyer_id = ?", productID, buyer.ID).
				First(&room).Error; err != nil {
				return nil, fmt.Errorf("failed to fetch concurrent chat room: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to create chat room: %w", err)
		}
	}

	return s.loadRoom(room.ID)
}

func (s *ChatService) ListRooms(user *models.User, params utils.PaginationParams) ([]models.ChatRoom, int64, error) {
	query := s.db.Model(&models.ChatRoom{}).
		Where("buyer_id = ? OR seller_id = ?", user.ID, user.ID).
		Preload("Product").Preload("Buyer").Preload("Seller")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count chat rooms: %w", err)
	}

	query = query.Order("updated_at DESC")
	query = utils.ApplyPagination(query, params)

	var rooms []models.ChatRoom
	if err := query.Find(&rooms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch chat rooms: %w", err)
	}

	return rooms, total, nil
}

// ListMessages returns the room's messages oldest-first and marks the other
// side's messages read. Non-participants get not found.
func (s *ChatService) ListMessages(user *models.User, roomID uuid.UUID, params utils.PaginationParams) ([]models.Message, int64, error) {
	room, err := s.participantRoom(user, roomID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Message{}).Where("chat_room_id = ?", room.ID).Preload("Sender")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query = query.Order("created_at ASC")
	query = utils.ApplyPagination(query, params)

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	s.db.Model(&models.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND read = ?", room.ID, user.ID, false).
		Update("read", true)

	return messages, total, nil
}

func (s *ChatService) SendMessage(user *models.User, roomID uuid.UUID, req *SendMessageRequest) (*models.Message, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid message: %v", err)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "message content is empty")
	}

	room, err := s.participantRoom(user, roomID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ChatRoomID: room.ID,
		SenderID:   user.ID,
		Content:    req.Content,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	// Bump the room so ListRooms sorts by recent activity.
	s.db.Model(room).UpdateColumn("updated_at", gorm.Expr("NOW()"))

	s.db.Preload("Sender").First(message, message.ID)

	return message, nil
}

func (s *ChatService) participantRoom(user *models.User, roomID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "chat room %s", roomID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !room.HasParticipant(user.ID) {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "chat room %s", roomID)
	}

	return &room, nil
}

func (s *ChatService) loadRoom(roomID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.Preload("Product").Preload("Buyer").Preload("Seller").
		First(&room, "id = ?", roomID).Error; err != nil {
		return nil, fmt.Errorf("failed to load chat room: %w", err)
	}
	return &room, nil
}
