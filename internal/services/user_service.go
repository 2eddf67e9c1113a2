// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type UserService struct {
	db             *gorm.DB
	storageService *StorageService
}

type UpdateProfileRequest struct {
	Phone           string     `json:"phone,omitempty" validate:"omitempty,max=20"`
	PhoneNumber     string     `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Address         string     `json:"address,omitempty" validate:"omitempty,max=1000"`
	FavoriteFlowers string     `json:"favorite_flowers,omitempty" validate:"omitempty,max=255"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	SellerRequested *bool      `json:"seller_requested,omitempty"`
}

// PublicProfile is what other users see.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserService(db *gorm.DB, storageService *StorageService) *UserService {
	return &UserService{db: db, storageService: storageService}
}

func (s *UserService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "user %s", userID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid profile: %v", err)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		userUpdates := make(map[string]interface{})
		if req.Phone != "" {
			userUpdates["phone"] = req.Phone
		}
		if req.SellerRequested != nil {
			userUpdates["seller_requested"] = *req.SellerRequested
		}
		if len(userUpdates) > 0 {
			if err := tx.Model(user).Updates(userUpdates).Error; err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		profileUpdates := make(map[string]interface{})
		if req.PhoneNumber != "" {
			profileUpdates["phone_number"] = req.PhoneNumber
		}
		if req.Address != "" {
			profileUpdates["address"] = req.Address
		}
		if req.FavoriteFlowers != "" {
			profileUpdates["favorite_flowers"] = req.FavoriteFlowers
		}
		if req.BirthDate != nil {
			profileUpdates["birth_date"] = req.BirthDate
		}
		if len(profileUpdates) > 0 {
			if err := tx.Model(&models.Profile{}).Where("user_id = ?", userID).
				Updates(profileUpdates).Error; err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(userID)
}

func (s *UserService) GetPublicProfile(userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *UserService) UploadAvatar(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	if s.storageService == nil {
		return nil, fmt.Errorf("storage service not configured")
	}

	if err := s.storageService.ValidateImage(file); err != nil {
		return nil, err
	}

	options := s.storageService.GetDefaultUploadOptions("avatars")
	result, err := s.storageService.UploadFile(file, header, options)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar_url", result.URL).Error; err != nil {
		return nil, fmt.Errorf("failed to save avatar url: %w", err)
	}

	return s.GetProfile(userID)
}

// CreateReport files a complaint about a user or a product.
func (s *UserService) CreateReport(reporter *models.User, req *CreateReportRequest) (*models.Report, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid report: %v", err)
	}

	if req.ReportedUserID == nil && req.ReportedProductID == nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "report must target a user or a product")
	}

	if req.ReportedUserID != nil {
		var count int64
		s.db.Model(&models.User{}).Where("id = ?", *req.ReportedUserID).Count(&count)
		if count == 0 {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "user %s", *req.ReportedUserID)
		}
	}
	if req.ReportedProductID != nil {
		var count int64
		s.db.Model(&models.Product{}).Where("id = ?", *req.ReportedProductID).Count(&count)
		if count == 0 {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", *req.ReportedProductID)
		}
	}

	report := &models.Report{
		ReporterID:      reporter.ID,
		ReportedUserID:  req.ReportedUserID,
		ReportedProduct: req.ReportedProductID,
		ReportType:      req.ReportType,
		Description:     req.Description,
		Status:          models.ReportStatusPending,
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

type CreateReportRequest struct {
	ReportedUserID    *uuid.UUID        `json:"reported_user_id,omitempty"`
	ReportedProductID *uuid.UUID        `json:"reported_product_id,omitempty"`
	ReportType        models.ReportType `json:"report_type" validate:"required"`
	Description       string            `json:"description" validate:"required,min=10,max=2000"`
}
