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
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Brands
	KeyBrandNotFound     = "brand.not_found"
	KeyBrandSlugConflict = "brand.slug_conflict"
	KeyBrandCreated      = "brand.created"
	KeyBrandUpdated      = "brand.updated"
	KeyBrandClaimed      = "brand.claimed"
	KeyBrandNotYours     = "brand.not_yours"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductSlugConflict = "product.slug_conflict"

	// Taxonomies
	KeySectorNotFound = "sector.not_found"
	KeyRegionNotFound = "region.not_found"
	KeyLabelNotFound  = "label.not_found"

	// Favorites
	KeyFavoriteAdded    = "favorite.added"
	KeyFavoriteRemoved  = "favorite.removed"
	KeyFavoriteNotFound = "favorite.not_found"

	// Subscription
	KeySubscriptionUpdated = "subscription.updated"
	KeySubscriptionFailed  = "subscription.failed"

	// Admin
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyAdminActionSuccess   = "admin.action_success"
	KeyAdminStatusUpdated   = "admin.status_updated"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Search
	KeySearchNoResults = "search.no_results"
)
