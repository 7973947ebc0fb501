package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the domain errors of the card platform.
The four conditions callers are expected to branch on are NotFound, Forbidden,
QuotaExceeded and InvalidInput; everything else is an internal failure.
*/

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidInput rejects malformed caller input before any mutation happens.
func ErrInvalidInput(domain, message string) *AppError {
	return New(CodeInvalidInput, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus reports an operation that is not valid for the entity's
// current lifecycle status.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrQuotaExceeded reports that a plan limit was reached. Kept as a distinct
// code so the frontend can show an upgrade prompt instead of a plain failure.
func ErrQuotaExceeded(domain, message string) *AppError {
	return New(CodeQuotaExceeded, domain, message, http.StatusForbidden)
}

// ErrProfileDeactivated is returned whenever a soft-deleted profile is
// addressed through a public surface.
var ErrProfileDeactivated = New(
	CodeForbidden,
	"profile",
	"Profile is deactivated",
	http.StatusForbidden,
)

// ErrInsightsDisabled is returned when analytics are requested for a profile
// that has insights turned off.
var ErrInsightsDisabled = New(
	CodeForbidden,
	"insights",
	"Insights are not enabled for this profile",
	http.StatusForbidden,
)
