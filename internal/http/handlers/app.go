package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/quota"
	"server/internal/storage"
)

// App bundles the handler dependencies. Repositories are constructed over the
// shared logging SQL runner; Now is swappable for tests.
type App struct {
	Cfg      *infra.Config
	Logger   zerolog.Logger
	SQL      infra.SQLExecutor
	Gate     *quota.Gate
	Profiles domain.ProfileRepository
	History  domain.PostHistoryRepository
	Calendar domain.CalendarRepository
	Store    *storage.FileStore
	Now      func() time.Time
}

// NewApp wires the default production dependencies.
func NewApp(cfg *infra.Config, logger zerolog.Logger, sql infra.SQLExecutor, store *storage.FileStore) *App {
	return &App{
		Cfg:      cfg,
		Logger:   logger,
		SQL:      sql,
		Gate:     quota.NewGate(repo.NewUsageRepository(sql), logger),
		Profiles: repo.NewProfileRepository(sql),
		History:  repo.NewPostHistoryRepository(sql),
		Calendar: repo.NewCalendarRepository(sql),
		Store:    store,
		Now:      time.Now,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// currentPlan resolves the caller's plan tier: token claims first, then the
// profile collaborator, then the freemium default.
func (a *App) currentPlan(ctx context.Context, userID string) domain.PlanTier {
	if label := middleware.PlanFromContext(ctx); label != "" {
		return domain.ParsePlanTier(label)
	}
	if profile, err := a.Profiles.Get(ctx, userID); err == nil {
		return profile.Plan
	}
	return domain.PlanFreemium
}

// recentHistory reads the analyzer window. Storage failures degrade to an
// empty history; they never block scheduling.
func (a *App) recentHistory(ctx context.Context, userID string) []domain.PostRecord {
	records, err := a.History.ListRecent(ctx, userID, a.Cfg.HistoryWindow)
	if err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Msg("history read failed, continuing without")
		return nil
	}
	return records
}

// remainingQuota converts a decision into the headroom shown to users; -1
// passes through for unlimited plans.
func remainingQuota(d quota.Decision) int {
	if d.Limit == domain.UnlimitedQuota {
		return domain.UnlimitedQuota
	}
	left := d.Limit - d.Current
	if left < 0 {
		return 0
	}
	return left
}
