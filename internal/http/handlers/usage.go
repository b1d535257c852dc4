package handlers

import (
	"errors"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/quota"
	"server/internal/sqlinline"
)

type usageDTO struct {
	Action    domain.ActionType `json:"action"`
	Used      int               `json:"used"`
	Limit     int               `json:"limit"`
	Remaining int               `json:"remaining"`
}

type usageResponse struct {
	Plan  domain.PlanTier `json:"plan"`
	Usage []usageDTO      `json:"usage"`
}

// Usage reports the caller's headroom for both metered actions. The read
// itself triggers the lazy month rollover when the stored period is stale.
func (a *App) Usage(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	plan := a.currentPlan(r.Context(), userID)

	resp := usageResponse{Plan: plan}
	for _, action := range []domain.ActionType{domain.ActionTask, domain.ActionImage} {
		d, err := a.Gate.CheckAllowed(r.Context(), userID, plan, action)
		if err != nil {
			if errors.Is(err, domain.ErrLedgerUnavailable) {
				a.error(w, http.StatusServiceUnavailable, "quota_unavailable", "could not verify usage")
				return
			}
			a.error(w, http.StatusInternalServerError, "internal", "failed to load usage")
			return
		}
		resp.Usage = append(resp.Usage, usageDTO{
			Action:    action,
			Used:      d.Current,
			Limit:     d.Limit,
			Remaining: remainingQuota(d),
		})
	}
	a.json(w, http.StatusOK, resp)
}

type userProfileDTO struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Plan      domain.PlanTier `json:"plan"`
	Locale    string          `json:"locale"`
	Usage     []usageDTO      `json:"usage"`
	CreatedAt time.Time       `json:"created_at"`
}

// Me returns the account profile together with current usage headroom.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	var (
		user domain.User
		plan string
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &plan, &user.Locale, &user.CreatedAt, &user.UpdatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	user.Plan = domain.ParsePlanTier(plan)

	dto := userProfileDTO{ID: user.ID, Email: user.Email, Name: user.Name, Plan: user.Plan, Locale: user.Locale, CreatedAt: user.CreatedAt}
	for _, action := range []domain.ActionType{domain.ActionTask, domain.ActionImage} {
		d, err := a.Gate.CheckAllowed(r.Context(), userID, user.Plan, action)
		if err != nil {
			// Profile display degrades: show a denied zero row instead of failing.
			d = quota.Decision{Action: action, Limit: domain.LimitsFor(user.Plan).Limit(action)}
		}
		dto.Usage = append(dto.Usage, usageDTO{
			Action:    action,
			Used:      d.Current,
			Limit:     d.Limit,
			Remaining: remainingQuota(d),
		})
	}
	a.json(w, http.StatusOK, dto)
}
