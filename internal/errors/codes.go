package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Frontends map these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Catalog (CATALOG_) ====================
	CatalogUnavailable    = "CATALOG_UNAVAILABLE"
	CatalogProductMissing = "CATALOG_PRODUCT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// ==================== Session (SESSION_) ====================
	SessionMissing = "SESSION_MISSING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
)
