package ledger

import "errors"

// Rejection reasons. Every failed operation wraps exactly one of these so
// callers can assert on cause with errors.Is, and handlers can surface a
// stable code via Code.
var (
	ErrNotFound          = errors.New("item not found")
	ErrInvalidState      = errors.New("item not active or already sold")
	ErrUnauthorized      = errors.New("caller not permitted")
	ErrInvalidInput      = errors.New("invalid name or price")
	ErrInsufficientValue = errors.New("offered value below asking price")
	ErrTransferFailed    = errors.New("value transfer failed")
)

// Code maps a ledger error (possibly wrapped) to its stable reason code.
// Unknown errors map to INTERNAL.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrInsufficientValue):
		return "INSUFFICIENT_VALUE"
	case errors.Is(err, ErrTransferFailed):
		return "TRANSFER_FAILED"
	default:
		return "INTERNAL"
	}
}
