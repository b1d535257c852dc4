package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// ProfileRepositoryPG supplies scheduling preferences from the users and
// profiles tables.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// Get returns the user's profile. A missing profiles row degrades to empty
// preference lists; a missing user is domain.ErrNotFound.
func (r *ProfileRepositoryPG) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfile, userID)

	var (
		profile domain.Profile
		plan    string
	)
	if err := row.Scan(&profile.UserID, &profile.Platforms, &profile.Themes, &profile.PostsPerWeek, &plan, &profile.BusinessCategory); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.Plan = domain.ParsePlanTier(plan)
	return &profile, nil
}
