package domain

import (
	"fmt"
	"time"
)

// ActionType enumerates the metered action categories.
type ActionType string

const (
	ActionTask  ActionType = "task"
	ActionImage ActionType = "image"
)

// ParseActionType validates an action label. Anything outside the closed set
// is a caller usage error, not a quota decision.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionTask, ActionImage:
		return ActionType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidActionType, s)
}

// UsageLedger holds one user's counters for the current billing month.
type UsageLedger struct {
	UserID      string
	TasksUsed   int
	ImagesUsed  int
	PeriodStart time.Time
	UpdatedAt   time.Time
}

// Used returns the counter for the given action.
func (l UsageLedger) Used(action ActionType) int {
	if action == ActionImage {
		return l.ImagesUsed
	}
	return l.TasksUsed
}

// Stale reports whether the ledger belongs to a month other than the one
// containing now. A stale ledger must be rolled over before its counters are
// consulted.
func (l UsageLedger) Stale(now time.Time) bool {
	return l.PeriodStart.Year() != now.Year() || l.PeriodStart.Month() != now.Month()
}
