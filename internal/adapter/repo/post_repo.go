package repo

import (
	"context"
	"fmt"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PostHistoryRepositoryPG reads historical content records for the analyzer.
type PostHistoryRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPostHistoryRepository creates a new PostHistoryRepositoryPG.
func NewPostHistoryRepository(sql infra.SQLExecutor) *PostHistoryRepositoryPG {
	return &PostHistoryRepositoryPG{sql: sql}
}

// ListRecent returns up to limit records, newest first.
func (r *PostHistoryRepositoryPG) ListRecent(ctx context.Context, userID string, limit int) ([]domain.PostRecord, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectRecentPosts, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	defer rows.Close()

	var records []domain.PostRecord
	for rows.Next() {
		var rec domain.PostRecord
		// text[] columns scan natively into *[]string under pgx.
		if err := rows.Scan(&rec.Platform, &rec.PostType, &rec.ScheduledTime, &rec.ContentLength, &rec.Hashtags, &rec.Theme); err != nil {
			return nil, fmt.Errorf("scan post record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post records: %w", err)
	}
	return records, nil
}
