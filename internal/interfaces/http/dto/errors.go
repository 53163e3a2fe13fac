package dto

import (
	"net/http"
	"strings"
)

// Error codes raised at the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing here fall back to suffix/prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// Authentication
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"INVALID_TOKEN":         http.StatusUnauthorized,
	"TOKEN_EXPIRED":         http.StatusUnauthorized,
	"TOKEN_INVALID":         http.StatusUnauthorized,
	"TOKEN_REVOKED":         http.StatusUnauthorized,
	"REFRESH_LIMIT_REACHED": http.StatusUnauthorized,

	// Account state
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"EMAIL_NOT_VERIFIED":  http.StatusForbidden,

	// Conflicts
	"ALREADY_EXISTS":              http.StatusConflict,
	"ALREADY_VERIFIED":            http.StatusConflict,
	"EMAIL_TAKEN":                 http.StatusConflict,
	"CATEGORY_EXISTS":             http.StatusConflict,
	"CATEGORY_IN_USE":             http.StatusConflict,
	"COMPANY_ALREADY_ASSIGNED":    http.StatusConflict,
	"CONCURRENCY_CONFLICT":        http.StatusConflict,
	"ONBOARDING_ALREADY_COMPLETE": http.StatusConflict,

	// Business rule violations
	"ACCOUNT_FROZEN":             http.StatusUnprocessableEntity,
	"COMPANY_MISMATCH":           http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":       http.StatusUnprocessableEntity,
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"TECHNICIAN_INACTIVE":        http.StatusUnprocessableEntity,
	"UNKNOWN_PROPERTY_REFERENCE": http.StatusUnprocessableEntity,

	// Input errors
	ErrCodeBadRequest: http.StatusBadRequest,
	"INVALID_INPUT":   http.StatusBadRequest,
	"WEAK_PASSWORD":   http.StatusBadRequest,

	// Rate limiting
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Server errors
	ErrCodeInternal: http.StatusInternalServerError,
	"STORAGE_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted codes are resolved by convention: *_NOT_FOUND maps to 404
// and INVALID_* maps to 400. Anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if code == ErrCodeNotFound || strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
