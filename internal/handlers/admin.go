// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/i18n"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/services"
	"github.com/Offensive94/Floreal-Paris-PUB/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	productService *services.ProductService
	reviewService  *services.ReviewService
	authService    *services.AuthService
}

func NewAdminHandler(adminService *services.AdminService, productService *services.ProductService, reviewService *services.ReviewService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		productService: productService,
		reviewService:  reviewService,
		authService:    authService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	stats, err := h.adminService.GetDashboardStats(user)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	users, total, err := h.adminService.ListUsers(user, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/users/:id/toggle-admin
func (h *AdminHandler) ToggleAdminRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	targetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	target, err := h.adminService.ToggleAdminRole(user, targetID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserRoleUpdated),
		"user":    target,
	})
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	targetID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(user, targetID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}

// GET /admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.adminService.ListAllProducts(user, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(productID, user); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// GET /admin/reviews
func (h *AdminHandler) ListReviews(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.adminService.ListAllReviews(user, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// DELETE /admin/reviews/:id
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(reviewID, user); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewDeleted),
	})
}

// GET /admin/reports
func (h *AdminHandler) ListReports(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var status *models.ReportStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.ReportStatus(statusStr)
		status = &s
	}

	params := utils.GetPaginationParams(c)
	reports, total, err := h.adminService.ListReports(user, status, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(reports, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/reports/:id/resolve
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	reportID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var req services.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	report, err := h.adminService.ResolveReport(user, reportID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminReportResolved),
		"report":  report,
	})
}
