package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/planner"
)

type calendarGenerateRequest struct {
	Platforms        []string       `json:"platforms"`
	Themes           []string       `json:"themes"`
	ContentMix       map[string]int `json:"content_mix"`
	PostsPerPlatform int            `json:"posts_per_platform"`
}

type calendarEntryDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Platform    string `json:"platform"`
	Topic       string `json:"topic"`
	PostType    string `json:"post_type"`
	ContentType string `json:"content_type"`
	Status      string `json:"status"`
}

type calendarResponse struct {
	Campaign     string             `json:"campaign"`
	FallbackUsed bool               `json:"fallback_used"`
	Entries      []calendarEntryDTO `json:"entries"`
}

// CalendarGenerate is a metered task action: the quota check runs before
// generation and the usage increment runs only after entries have been
// persisted. The split pair is used here, not Consume, because the protected
// action sits between the two calls.
func (a *App) CalendarGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req calendarGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	plan := a.currentPlan(r.Context(), userID)
	decision, err := a.Gate.CheckAllowed(r.Context(), userID, plan, domain.ActionTask)
	if err != nil {
		a.error(w, http.StatusServiceUnavailable, "quota_unavailable", "could not verify quota")
		return
	}
	if !decision.Allowed {
		a.error(w, http.StatusForbidden, "quota_exceeded", "monthly task quota exceeded")
		return
	}

	now := a.Now()
	profile, err := a.Profiles.Get(r.Context(), userID)
	if err != nil {
		// Profile collaborator unavailable: the builder substitutes defaults.
		profile = nil
	}
	history := a.recentHistory(r.Context(), userID)

	strategy, strategyFellBack := planner.BuildStrategy(profile, history, planner.Overrides{
		Platforms:        req.Platforms,
		Themes:           req.Themes,
		ContentMix:       req.ContentMix,
		PostsPerPlatform: req.PostsPerPlatform,
	}, now)
	plan7 := planner.Generate(strategy, now)

	for i := range plan7.Entries {
		plan7.Entries[i].ID = uuid.NewString()
		plan7.Entries[i].UserID = userID
	}
	if err := a.Calendar.SaveAll(r.Context(), plan7.Entries); err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist calendar entries")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save calendar")
		return
	}

	// Best effort after success: a failed increment never rolls the plan back.
	a.Gate.RecordUsage(r.Context(), userID, domain.ActionTask)

	a.json(w, http.StatusOK, calendarResponse{
		Campaign:     strategy.CampaignName,
		FallbackUsed: strategyFellBack || plan7.FallbackUsed,
		Entries:      toEntryDTOs(plan7.Entries),
	})
}

// CalendarList returns the caller's upcoming entries.
func (a *App) CalendarList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	entries, err := a.Calendar.ListUpcoming(r.Context(), userID, dateOf(a.Now()), a.Cfg.CalendarPageSize)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load calendar")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"entries": toEntryDTOs(entries)})
}

func toEntryDTOs(entries []domain.CalendarEntry) []calendarEntryDTO {
	dtos := make([]calendarEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, calendarEntryDTO{
			ID:          e.ID,
			Date:        e.Date.Format("2006-01-02"),
			Time:        e.TimeSlot,
			Platform:    e.Platform,
			Topic:       e.Topic,
			PostType:    e.PostType,
			ContentType: e.ContentType,
			Status:      string(e.Status),
		})
	}
	return dtos
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
