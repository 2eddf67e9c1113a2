// internal/services/cart_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

func cartBuyer() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Role:      models.UserRoleBuyer,
	}
}

func cartAdmin() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Role:      models.UserRoleAdmin,
	}
}

func TestAdjustItemRejectsNonUnitDelta(t *testing.T) {
	s := NewCartService(nil, nil)
	buyer := cartBuyer()

	for _, delta := range []int{0, 2, -2, -100, 50} {
		_, err := s.AdjustItem(buyer, uuid.New(), delta)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "delta %d", delta)
	}
}

func TestCartForbiddenForAdmins(t *testing.T) {
	s := NewCartService(nil, nil)
	admin := cartAdmin()

	_, err := s.AdjustItem(admin, uuid.New(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = s.AddItem(admin, &AddToCartRequest{ProductID: uuid.New(), Quantity: 1})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = s.ClearCart(admin)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
