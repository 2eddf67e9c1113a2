// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/apperrors"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/authz"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalUsers      int64           `json:"total_users"`
	TotalSellers    int64           `json:"total_sellers"`
	TotalProducts   int64           `json:"total_products"`
	ActiveProducts  int64           `json:"active_products"`
	TotalOrders     int64           `json:"total_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	PendingReports  int64           `json:"pending_reports"`
	NewUsersToday   int64           `json:"new_users_today"`
}

type ResolveReportRequest struct {
	Status models.ReportStatus `json:"status" validate:"required,oneof=resolved rejected"`
	Notes  string              `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats(actor *models.User) (*DashboardStats, error) {
	if !authz.Can(actor, authz.ActionViewDashboard, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	stats := &DashboardStats{}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleSeller).Count(&stats.TotalSellers)
	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts)
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted).Count(&stats.CompletedOrders)
	s.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).Count(&stats.PendingReports)

	var revenue decimal.NullDecimal
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue)
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	today := time.Now().Truncate(24 * time.Hour)
	s.db.Model(&models.User{}).Where("created_at >= ?", today).Count(&stats.NewUsersToday)

	return stats, nil
}

// ListUsers supports paging plus search. A search term that parses as a UUID
// matches the id exactly; otherwise it matches username or email substrings.
func (s *AdminService) ListUsers(actor *models.User, params utils.PaginationParams) ([]models.User, int64, error) {
	if !authz.Can(actor, authz.ActionViewDashboard, authz.Resource{}) {
		return nil, 0, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	query := s.db.Model(&models.User{})

	if params.Search != "" {
		if id, err := uuid.Parse(params.Search); err == nil {
			query = query.Where("id = ?", id)
		} else {
			searchTerm := "%" + strings.ToLower(params.Search) + "%"
			query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// ToggleAdminRole flips a user between the admin role and their previous
// standing. Only the superuser may do this, and never against the superuser.
func (s *AdminService) ToggleAdminRole(actor *models.User, targetID uuid.UUID) (*models.User, error) {
	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "user %s", targetID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !authz.Can(actor, authz.ActionToggleAdmin, authz.Resource{IsSuperuser: target.IsSuperuser}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "only the superuser can change admin roles")
	}

	newRole := models.UserRoleAdmin
	if target.Role == models.UserRoleAdmin {
		newRole = models.UserRoleBuyer
	}

	if err := s.db.Model(&target).Update("role", newRole).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"actor_id":  actor.ID,
		"target_id": target.ID,
		"new_role":  newRole,
	}).Info("Admin role toggled")

	target.Role = newRole
	return &target, nil
}

// DeleteUser removes a user and their dependent records. Admins cannot delete
// themselves or the superuser.
func (s *AdminService) DeleteUser(actor *models.User, targetID uuid.UUID) error {
	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrNotFound, "user %s", targetID)
		}
		return fmt.Errorf("database error: %w", err)
	}

	res := authz.Resource{IsSuperuser: target.IsSuperuser, IsSelf: actor.ID == target.ID}
	if !authz.Can(actor, authz.ActionDeleteUser, res) {
		return apperrors.Wrap(apperrors.ErrForbidden, "not allowed to delete this user")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Products go first so their cart lines, reviews and chats cascade.
		if err := tx.Where("seller_id = ?", targetID).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete user products: %w", err)
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("failed to delete user carts: %w", err)
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete user reviews: %w", err)
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete user notifications: %w", err)
		}
		// Orders stay for the books; detach the owner.
		if err := tx.Model(&models.Order{}).Where("user_id = ?", targetID).
			Update("user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach user orders: %w", err)
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("failed to delete user profile: %w", err)
		}
		if err := tx.Delete(&target).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"actor_id":  actor.ID,
			"target_id": targetID,
		}).Info("User deleted")

		return nil
	})
}

func (s *AdminService) ListAllProducts(actor *models.User, params utils.PaginationParams) ([]models.Product, int64, error) {
	if !authz.Can(actor, authz.ActionViewDashboard, authz.Resource{}) {
		return nil, 0, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	query := s.db.Model(&models.Product{}).Preload("Seller")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "price", "views"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *AdminService) ListAllReviews(actor *models.User, params utils.PaginationParams) ([]models.Review, int64, error) {
	if !authz.Can(actor, authz.ActionViewDashboard, authz.Resource{}) {
		return nil, 0, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	query := s.db.Model(&models.Review{}).Preload("User").Preload("Product")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *AdminService) ListReports(actor *models.User, status *models.ReportStatus, params utils.PaginationParams) ([]models.Report, int64, error) {
	if !authz.Can(actor, authz.ActionResolveReport, authz.Resource{}) {
		return nil, 0, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	query := s.db.Model(&models.Report{}).Preload("Reporter")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return reports, total, nil
}

func (s *AdminService) ResolveReport(actor *models.User, reportID uuid.UUID, req *ResolveReportRequest) (*models.Report, error) {
	if !authz.Can(actor, authz.ActionResolveReport, authz.Resource{}) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "administrator access required")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid resolution: %v", err)
	}

	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "report %s", reportID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if report.Status != models.ReportStatusPending {
		return nil, apperrors.Wrap(apperrors.ErrConflict, "report already resolved")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           req.Status,
		"resolved_by_id":   actor.ID,
		"resolved_at":      &now,
		"resolution_notes": req.Notes,
	}
	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve report: %w", err)
	}

	s.db.Preload("Reporter").Preload("ResolvedBy").First(&report, reportID)

	return &report, nil
}
