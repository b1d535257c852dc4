package domain

import (
	"context"
	"time"
)

// UsageRepository persists per-user monthly usage ledgers.
type UsageRepository interface {
	// GetOrCreate returns the user's ledger, creating a zeroed row with
	// period_start=now when none exists.
	GetOrCreate(ctx context.Context, userID string, now time.Time) (*UsageLedger, error)
	// Reset zeroes both counters and moves period_start to now (month rollover).
	Reset(ctx context.Context, userID string, now time.Time) (*UsageLedger, error)
	// Increment adds one to the counter for the given action.
	Increment(ctx context.Context, userID string, action ActionType) error
	// IncrementIfBelow performs the atomic conditional increment: it adds one
	// only while the counter is below limit (limit -1 never blocks) and
	// reports the post-update counter and whether the increment happened.
	IncrementIfBelow(ctx context.Context, userID string, action ActionType, limit int) (int, bool, error)
}

// PostHistoryRepository reads a user's historical content records.
type PostHistoryRepository interface {
	// ListRecent returns up to limit records ordered by recency, newest first.
	// Storage failures degrade to an empty slice upstream; they never block
	// scheduling.
	ListRecent(ctx context.Context, userID string, limit int) ([]PostRecord, error)
}

// ProfileRepository supplies a user's configured scheduling preferences.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
}

// CalendarRepository persists generated calendar entries.
type CalendarRepository interface {
	SaveAll(ctx context.Context, entries []CalendarEntry) error
	ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]CalendarEntry, error)
	// MarkPublished flips due scheduled entries to published and returns how
	// many were updated. Used by the publisher worker.
	MarkPublished(ctx context.Context, due time.Time) (int, error)
}
