package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UsageRepositoryPG implements domain.UsageRepository on PostgreSQL. All
// statements go through the logging SQL runner.
type UsageRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(sql infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{sql: sql}
}

// GetOrCreate returns the user's ledger, inserting a zeroed row for the
// current period when none exists yet.
func (r *UsageRepositoryPG) GetOrCreate(ctx context.Context, userID string, now time.Time) (*domain.UsageLedger, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertUsageLedger, userID, now)
	return scanLedger(row, userID)
}

// Reset zeroes both counters and moves period_start to now.
func (r *UsageRepositoryPG) Reset(ctx context.Context, userID string, now time.Time) (*domain.UsageLedger, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QResetUsageLedger, userID, now)
	return scanLedger(row, userID)
}

// Increment adds one to the counter for the given action, unconditionally.
func (r *UsageRepositoryPG) Increment(ctx context.Context, userID string, action domain.ActionType) error {
	query := sqlinline.QIncrementTaskUsage
	if action == domain.ActionImage {
		query = sqlinline.QIncrementImageUsage
	}
	tag, err := r.sql.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment usage: %w", domain.ErrNotFound)
	}
	return nil
}

// IncrementIfBelow adds one only while the counter is below limit, in a
// single conditional UPDATE. When the row does not qualify it reads back the
// current counter so the caller can report headroom.
func (r *UsageRepositoryPG) IncrementIfBelow(ctx context.Context, userID string, action domain.ActionType, limit int) (int, bool, error) {
	query := sqlinline.QIncrementTaskIfBelow
	if action == domain.ActionImage {
		query = sqlinline.QIncrementImageIfBelow
	}

	var count int
	err := r.sql.QueryRow(ctx, query, userID, limit).Scan(&count)
	if err == nil {
		return count, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("conditional increment: %w", err)
	}

	var tasks, images int
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectUsageCounters, userID).Scan(&tasks, &images); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, domain.ErrNotFound
		}
		return 0, false, fmt.Errorf("read counters: %w", err)
	}
	if action == domain.ActionImage {
		return images, false, nil
	}
	return tasks, false, nil
}

func scanLedger(row pgx.Row, userID string) (*domain.UsageLedger, error) {
	ledger := domain.UsageLedger{UserID: userID}
	if err := row.Scan(&ledger.TasksUsed, &ledger.ImagesUsed, &ledger.PeriodStart, &ledger.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan usage ledger: %w", err)
	}
	return &ledger, nil
}
