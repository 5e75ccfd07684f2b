package dto

import "net/http"

// Error codes returned by the API that do not originate in the domain layer
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRateLimited is used when a client exceeds its request budget
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain and API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input problems -> 400 Bad Request
	ErrCodeBadRequest:         http.StatusBadRequest,
	"INVALID_INPUT":           http.StatusBadRequest,
	"VALIDATION_ERROR":        http.StatusBadRequest,
	"INVALID_REACTION":        http.StatusBadRequest,
	"INVALID_BAN_SCOPE":       http.StatusBadRequest,
	"INVALID_STATUS":          http.StatusBadRequest,
	"INVALID_RATING":          http.StatusBadRequest,
	"INVALID_PRICE":           http.StatusBadRequest,
	"INVALID_STOCK_STATUS":    http.StatusBadRequest,
	"INVALID_QUANTITY":        http.StatusBadRequest,
	"DISALLOWED_CONTENT_TYPE": http.StatusBadRequest,

	// Authentication problems -> 401 Unauthorized
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,

	// Permission problems -> 403 Forbidden
	"FORBIDDEN": http.StatusForbidden,

	// Missing resources -> 404 Not Found
	"NOT_FOUND":        http.StatusNotFound,
	"UPLOAD_NOT_FOUND": http.StatusNotFound,

	// Conflicts -> 409 Conflict
	"ALREADY_EXISTS": http.StatusConflict,
	"EMAIL_TAKEN":    http.StatusConflict,

	// Oversized uploads -> 413 Request Entity Too Large
	"FILE_TOO_LARGE": http.StatusRequestEntityTooLarge,

	// State problems -> 422 Unprocessable Entity
	"INVALID_STATE": http.StatusUnprocessableEntity,

	// Throttling -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Upstream failures -> 502 Bad Gateway
	"REMOTE_UNAVAILABLE":   http.StatusBadGateway,
	"UPLOAD_URL_FAILED":    http.StatusBadGateway,
	"STORAGE_CHECK_FAILED": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
