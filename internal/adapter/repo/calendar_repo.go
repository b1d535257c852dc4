package repo

import (
	"context"
	"fmt"
	"time"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CalendarRepositoryPG persists generated calendar entries.
type CalendarRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCalendarRepository creates a new CalendarRepositoryPG.
func NewCalendarRepository(sql infra.SQLExecutor) *CalendarRepositoryPG {
	return &CalendarRepositoryPG{sql: sql}
}

// SaveAll inserts the entry sequence in order.
func (r *CalendarRepositoryPG) SaveAll(ctx context.Context, entries []domain.CalendarEntry) error {
	for _, e := range entries {
		_, err := r.sql.Exec(ctx, sqlinline.QInsertCalendarEntry,
			e.ID, e.UserID, e.Date, e.TimeSlot, e.Platform, e.Topic, e.PostType, e.ContentType, string(e.Status), e.Campaign)
		if err != nil {
			return fmt.Errorf("insert calendar entry: %w", err)
		}
	}
	return nil
}

// ListUpcoming returns the user's entries dated from the given day onwards.
func (r *CalendarRepositoryPG) ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]domain.CalendarEntry, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectUpcomingEntries, userID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("list calendar entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CalendarEntry
	for rows.Next() {
		e := domain.CalendarEntry{UserID: userID}
		var status string
		if err := rows.Scan(&e.ID, &e.Date, &e.TimeSlot, &e.Platform, &e.Topic, &e.PostType, &e.ContentType, &status, &e.Campaign, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar entry: %w", err)
		}
		e.Status = domain.EntryStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calendar entries: %w", err)
	}
	return entries, nil
}

// MarkPublished flips scheduled entries whose slot has passed.
func (r *CalendarRepositoryPG) MarkPublished(ctx context.Context, due time.Time) (int, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkEntriesPublished, due, due.Format("15:04"))
	if err != nil {
		return 0, fmt.Errorf("mark entries published: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
