// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess   = "success"
	KeyError     = "error"
	KeyForbidden = "forbidden"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserDeleted        = "user.deleted"
	KeyUserRoleUpdated    = "user.role_updated"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartCleared      = "cart.cleared"
	KeyCartEmpty        = "cart.empty"
	KeyCartNotFound     = "cart.not_found"
	KeyCartItemsRemoved = "cart.items_removed"

	// Orders and Payments
	KeyOrderCreated          = "order.created"
	KeyOrderNotFound         = "order.not_found"
	KeyOrderAlreadyFinalized = "order.already_finalized"
	KeyPaymentSuccess        = "payment.success"
	KeyPaymentDeclined       = "payment.declined"
	KeyPaymentInvalidCard    = "payment.invalid_card"

	// Receipts
	KeyReceiptNotFound         = "receipt.not_found"
	KeyReceiptSignatureValid   = "receipt.signature_valid"
	KeyReceiptSignatureInvalid = "receipt.signature_invalid"

	// Reviews
	KeyReviewCreated   = "review.created"
	KeyReviewDeleted   = "review.deleted"
	KeyReviewNotFound  = "review.not_found"
	KeyReviewDuplicate = "review.duplicate"

	// Chat
	KeyChatRoomNotFound = "chat.room_not_found"
	KeyChatMessageSent  = "chat.message_sent"
	KeyChatSelfChat     = "chat.self_chat"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
	KeyNotificationRead     = "notification.read"

	// Admin
	KeyAdminActionSuccess  = "admin.action_success"
	KeyAdminAccessDenied   = "admin.access_denied"
	KeyAdminReportResolved = "admin.report_resolved"
	KeyReportNotFound      = "report.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
