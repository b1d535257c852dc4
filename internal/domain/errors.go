package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrLedgerUnavailable = errors.New("usage ledger unavailable")
	ErrInvalidActionType = errors.New("invalid action type")
	ErrInvalidStrategy   = errors.New("invalid strategy")
)
