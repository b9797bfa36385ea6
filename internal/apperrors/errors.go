package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrRateNotFound indicates no market close with an exchange rate exists for the requested date.
var ErrRateNotFound = errors.New("exchange rate not found for date")

// ErrNoValidData indicates a purchase submission contributed nothing to either coffee class.
var ErrNoValidData = errors.New("no valid purchase data")

// Code returns the machine-readable code for the first sentinel found in err's chain.
// Unknown errors map to STORE_FAULT.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrRateNotFound):
		return "RATE_NOT_FOUND"
	case errors.Is(err, ErrNoValidData):
		return "NO_VALID_DATA"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "STORE_FAULT"
	}
}
