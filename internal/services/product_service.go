// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/authz"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title       string               `json:"title" validate:"required,min=3,max=200"`
	Description string               `json:"description" validate:"required,min=10"`
	Price       decimal.Decimal      `json:"price" validate:"required"`
	Status      models.ProductStatus `json:"status,omitempty"`
	ImageURL    string               `json:"image_url,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
}

type UpdateProductRequest struct {
	Title       string               `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description string               `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *decimal.Decimal     `json:"price,omitempty"`
	Status      models.ProductStatus `json:"status,omitempty"`
	ImageURL    string               `json:"image_url,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	SellerID *uuid.UUID            `json:"seller_id,omitempty"`
	Status   *models.ProductStatus `json:"status,omitempty"`
	PriceMin *decimal.Decimal      `json:"price_min,omitempty"`
	PriceMax *decimal.Decimal      `json:"price_max,omitempty"`
	Tags     []string              `json:"tags,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(seller *models.User, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid product: %v", err)
	}

	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "price must be positive")
	}

	if seller.Role != models.UserRoleSeller && !seller.IsAdmin() {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "only sellers can create products")
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusInStock
	}

	product := &models.Product{
		SellerID:    seller.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      status,
		IsActive:    true,
		ImageURL:    req.ImageURL,
		Tags:        pq.StringArray(req.Tags),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Seller").First(product, product.ID)

	return product, nil
}

// GetProduct returns a product visible to the caller. Inactive products are
// hidden from everyone but the seller and admins, and only stranger views
// count toward the view counter.
func (s *ProductService) GetProduct(id uuid.UUID, viewer *models.User) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Seller").Preload("Reviews").Preload("Reviews.User").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsActive {
		if viewer == nil || (viewer.ID != product.SellerID && !viewer.IsAdmin()) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", id)
		}
	}

	if viewer == nil || viewer.ID != product.SellerID {
		go s.incrementViewCount(id)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, actor *models.User, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid product: %v", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "product %s", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.Can(actor, authz.ActionEditProduct, authz.Resource{OwnerID: product.SellerID}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "not the seller of this product")
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.Wrap(apperrors.ErrValidation, "price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Seller").First(&product, id)

	return &product, nil
}

// DeleteProduct hard-deletes the product. Line items, reviews and chat rooms
// referencing it go with it via the cascade constraints.
func (s *ProductService) DeleteProduct(id uuid.UUID, actor *models.User) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrNotFound, "product %s", id)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !authz.Can(actor, authz.ActionDeleteProduct, authz.Resource{OwnerID: product.SellerID}) {
		return apperrors.Wrap(apperrors.ErrForbidden, "not allowed to delete this product")
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Seller").
		Where("is_active = ?", true)

	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pq.StringArray(params.Tags))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price", "views"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetSellerProducts(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("seller_id = ?", sellerID)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count seller products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price", "views"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch seller products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetPopularProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ?", true).
		Order("views DESC, created_at DESC").
		Limit(limit).
		Preload("Seller").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetNewProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Seller").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch new products: %w", err)
	}

	return products, nil
}

func (s *ProductService) incrementViewCount(productID uuid.UUID) {
	s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("views", gorm.Expr("views + 1"))
}
