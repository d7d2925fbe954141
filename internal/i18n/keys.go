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
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Listings
	KeyListingCreated   = "listing.created"
	KeyListingUpdated   = "listing.updated"
	KeyListingDeleted   = "listing.deleted"
	KeyListingNotFound  = "listing.not_found"
	KeyListingNotActive = "listing.not_active"
	KeyListingSold      = "listing.sold"
	KeyListingHasBids   = "listing.has_bids"

	// Bids
	KeyBidPlaced    = "bid.placed"
	KeyBidTooLow    = "bid.too_low"
	KeyBidNoBids    = "bid.no_bids"
	KeyBidWonNotice = "bid.won_notice"

	// Crops
	KeyCropCreated  = "crop.created"
	KeyCropNotFound = "crop.not_found"

	// Weather
	KeyWeatherLocationNotFound = "weather.location_not_found"
	KeyWeatherFetchFailed      = "weather.fetch_failed"

	// AI
	KeyAIAnalysisFailed = "ai.analysis_failed"
	KeyAIParseFailed    = "ai.parse_failed"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileTooLarge      = "file.too_large"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
)
