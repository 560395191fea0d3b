package models

import "errors"

// Domain failure kinds. Repositories return these (possibly wrapped) instead of
// mixing boolean returns and panics, so controllers have one mapping to HTTP codes.
var (
	ErrInsufficientQuantity = errors.New("insufficient quantity remaining")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSessionClosed        = errors.New("cash register session is not open")
	ErrSessionAlreadyOpen   = errors.New("a cash register session is already open for this point of sale")
	ErrPeriodClosed         = errors.New("accounting period is closed")
	ErrUnbalancedEntry      = errors.New("journal entry debits and credits do not balance")
	ErrReasonRequired       = errors.New("a reason is required")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)
