package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/captions"
	"server/internal/domain"
	"server/internal/middleware"
)

type captionDraftRequest struct {
	Theme    string   `json:"theme"`
	Platform string   `json:"platform"`
	Hashtags []string `json:"hashtags"`
}

// CaptionsDraft is a metered task action using the atomic Consume path:
// reserving the usage unit and performing the draft are one step because
// drafting is local and cannot fail after the reservation.
func (a *App) CaptionsDraft(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req captionDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	plan := a.currentPlan(r.Context(), userID)
	decision, err := a.Gate.Consume(r.Context(), userID, plan, domain.ActionTask)
	if err != nil {
		a.error(w, http.StatusServiceUnavailable, "quota_unavailable", "could not verify quota")
		return
	}
	if !decision.Allowed {
		a.error(w, http.StatusForbidden, "quota_exceeded", "monthly task quota exceeded")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	caption := captions.Draft(req.Theme, req.Platform, locale, req.Hashtags)

	a.json(w, http.StatusOK, map[string]any{
		"caption":         caption,
		"remaining_quota": remainingQuota(decision),
	})
}
