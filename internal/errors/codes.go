package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The mobile client maps its own strings from these codes.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/email or password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // logged out token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email taken
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // username taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // owner only
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // token carries no role

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"     // bad input
	ValidationInvalidID        = "VALIDATION_INVALID_ID"        // bad id
	ValidationInvalidFormat    = "VALIDATION_INVALID_FORMAT"    // bad format
	ValidationInvalidRange     = "VALIDATION_INVALID_RANGE"     // out of range
	ValidationRequired         = "VALIDATION_REQUIRED"          // missing field
	ValidationInvalidReference = "VALIDATION_INVALID_REFERENCE" // write points at a missing entity

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // not found
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflict

	// ==================== Routes (ROUTE_) ====================
	RouteNotFound          = "ROUTE_NOT_FOUND"
	RouteStopNotFound      = "ROUTE_STOP_NOT_FOUND"
	RouteStopDuplicate     = "ROUTE_STOP_DUPLICATE"  // place already in route
	RouteSavedDuplicate    = "ROUTE_SAVED_DUPLICATE" // route already saved by user
	RouteInvalidVisibility = "ROUTE_INVALID_VISIBILITY"

	// ==================== Places (PLACE_) ====================
	PlaceNotFound     = "PLACE_NOT_FOUND"
	FavoriteDuplicate = "FAVORITE_DUPLICATE"
	FavoriteNotFound  = "FAVORITE_NOT_FOUND"

	// ==================== Hierarchy (GEO_) ====================
	GeoProvinceNotFound = "GEO_PROVINCE_NOT_FOUND"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING" // rating outside 1-5

	// ==================== Events (EVENT_) ====================
	EventNotFound = "EVENT_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
