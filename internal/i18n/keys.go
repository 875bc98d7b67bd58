// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccessDenied       = "auth.access_denied"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Accounts
	KeyAccountCreated  = "account.created"
	KeyAccountUpdated  = "account.updated"
	KeyAccountDeleted  = "account.deleted"
	KeyAccountNotFound = "account.not_found"
	KeyAccountExists   = "account.exists"
	KeyAccountDisabled = "account.disabled"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"

	// Variants
	KeyVariantCreated   = "variant.created"
	KeyVariantUpdated   = "variant.updated"
	KeyVariantDeleted   = "variant.deleted"
	KeyVariantNotFound  = "variant.not_found"
	KeyVariantDuplicate = "variant.duplicate"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Packs
	KeyPackCreated  = "pack.created"
	KeyPackUpdated  = "pack.updated"
	KeyPackDeleted  = "pack.deleted"
	KeyPackNotFound = "pack.not_found"

	// Orders
	KeyOrderCreated       = "order.created"
	KeyOrderUpdated       = "order.updated"
	KeyOrderDeleted       = "order.deleted"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderCanceled      = "order.canceled"
	KeyOrderStateConflict = "order.state_conflict"

	// Promo codes
	KeyPromoCreated  = "promo.created"
	KeyPromoUpdated  = "promo.updated"
	KeyPromoDeleted  = "promo.deleted"
	KeyPromoNotFound = "promo.not_found"
	KeyPromoInvalid  = "promo.invalid"
	KeyPromoValid    = "promo.valid"

	// Wilayas
	KeyWilayaCreated  = "wilaya.created"
	KeyWilayaUpdated  = "wilaya.updated"
	KeyWilayaDeleted  = "wilaya.deleted"
	KeyWilayaNotFound = "wilaya.not_found"

	// Contact
	KeyContactReceived = "contact.received"

	// Files
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationFailed  = "validation.failed"
)
