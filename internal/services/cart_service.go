// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/authz"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type CartService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// CartView is the cart as returned to the client, with any lines that were
// dropped during cleanup listed alongside.
type CartView struct {
	Cart            *models.Cart `json:"cart"`
	RemovedProducts []string     `json:"removed_products,omitempty"`
}

func NewCartService(db *gorm.DB, notificationService *NotificationService) *CartService {
	return &CartService{
		db:                  db,
		notificationService: notificationService,
	}
}

// GetOrCreateActiveCart returns the user's single active cart, creating one if
// none exists. Two concurrent first-time requests both attempt the insert; the
// partial unique index rejects the loser, which then fetches the winner's row.
func (s *CartService) GetOrCreateActiveCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ? AND is_active = ?", userID, true).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart = models.Cart{UserID: userID, IsActive: true}
	if err := tx.Create(&cart).Error; err != nil {
		if apperrors.IsUniqueViolation(err, "idx_carts_user_active") {
			// Lost the race; the concurrent request created the cart.
			if err := tx.Where("user_id = ? AND is_active = ?", userID, true).First(&cart).Error; err != nil {
				return nil, fmt.Errorf("failed to fetch concurrent cart: %w", err)
			}
			return &cart, nil
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return &cart, nil
}

// AddItem puts a product into the user's active cart. Repeated adds accumulate
// quantity atomically via an upsert on the (cart, product) unique index.
func (s *CartService) AddItem(user *models.User, req *AddToCartRequest) (*models.Cart, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid request: %v", err)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "quantity must be at least 1")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ? AND is_active = ?", req.ProductID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", req.ProductID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var cart *models.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.GetOrCreateActiveCart(tx, user.ID)
		if err != nil {
			return err
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&item).Error; err != nil {
			// The product passed the active check above but was hard-deleted
			// before the insert landed.
			if apperrors.IsForeignKeyViolation(err) {
				return apperrors.Wrap(apperrors.ErrNotFound, "product %s", product.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cart.ID)
}

// AdjustItem steps a line's quantity up or down by one. Decrementing a
// quantity-one line removes it; adjusting a line that is not in the cart is
// not found.
func (s *CartService) AdjustItem(user *models.User, productID uuid.UUID, delta int) (*models.Cart, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")
	}
	if delta != 1 && delta != -1 {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "delta must be 1 or -1")
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.GetOrCreateActiveCart(tx, user.ID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Wrap(apperrors.ErrNotFound, "product %s is not in the cart", productID)
			}
			return fmt.Errorf("database error: %w", err)
		}

		newQuantity := item.Quantity + delta
		if newQuantity < 1 {
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", newQuantity).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// RemoveItem drops a line from the cart. Removing an absent line is a no-op.
func (s *CartService) RemoveItem(user *models.User, productID uuid.UUID) (*models.Cart, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.GetOrCreateActiveCart(tx, user.ID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		return tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// ClearCart empties the active cart. Clearing an already-empty cart succeeds.
func (s *CartService) ClearCart(user *models.User) (*models.Cart, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.GetOrCreateActiveCart(tx, user.ID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(cartID)
}

// ViewCart returns the active cart after dropping lines whose product has been
// deactivated or deleted since they were added. Dropped lines are reported in
// the response and recorded as a persisted notification, so the warning is not
// lost if the client never renders this response.
func (s *CartService) ViewCart(user *models.User) (*CartView, error) {
	if !authz.Can(user, authz.ActionUseCart, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrators cannot use the cart")
	}

	var cartID uuid.UUID
	var removed []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.GetOrCreateActiveCart(tx, user.ID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Preload("Product").Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}

		for _, item := range items {
			if item.Product.ID == uuid.Nil || !item.Product.IsActive {
				title := item.Product.Title
				if title == "" {
					title = "deleted product"
				}
				removed = append(removed, title)
				if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
					return fmt.Errorf("failed to drop stale cart item: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(removed) > 0 && s.notificationService != nil {
		if err := s.notificationService.NotifyCartItemsRemoved(user.ID, removed); err != nil {
			return nil, err
		}
	}

	cart, err := s.loadCart(cartID)
	if err != nil {
		return nil, err
	}

	return &CartView{Cart: cart, RemovedProducts: removed}, nil
}

func (s *CartService) loadCart(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items").Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &cart, nil
}
