// Package quota implements the metered-usage gate that protects paid actions.
//
// The gate exposes the classic check/record pair used by call sites that must
// run the protected action between the two calls, plus Consume, a single
// atomic conditional increment for call sites that can treat "reserve usage"
// and "perform action" as one step.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Decision is the outcome of a quota check, carrying the data user-facing
// messaging needs.
type Decision struct {
	Allowed bool              `json:"allowed"`
	Current int               `json:"current"`
	Limit   int               `json:"limit"`
	Action  domain.ActionType `json:"action"`
}

// Gate evaluates plan limits against the usage ledger.
type Gate struct {
	usage  domain.UsageRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewGate constructs a Gate backed by the given ledger repository.
func NewGate(usage domain.UsageRepository, logger zerolog.Logger) *Gate {
	return &Gate{usage: usage, logger: logger, now: time.Now}
}

// CheckAllowed reports whether the user may perform the action under their
// plan. Admin plans bypass the ledger entirely. The lazy month rollover runs
// as a side effect even when the action ends up denied. A ledger read failure
// fails closed: the decision denies and the error wraps ErrLedgerUnavailable
// so callers can distinguish "over limit" from "could not verify".
func (g *Gate) CheckAllowed(ctx context.Context, userID string, plan domain.PlanTier, action domain.ActionType) (Decision, error) {
	if err := validateAction(action); err != nil {
		return Decision{Action: action}, err
	}
	if plan.IsAdmin() {
		return Decision{Allowed: true, Current: 0, Limit: domain.UnlimitedQuota, Action: action}, nil
	}

	limit := domain.LimitsFor(plan).Limit(action)
	ledger, err := g.reconciled(ctx, userID)
	if err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Str("action", string(action)).Msg("quota: ledger read failed, denying")
		return Decision{Allowed: false, Limit: limit, Action: action}, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	current := ledger.Used(action)
	if limit == domain.UnlimitedQuota {
		return Decision{Allowed: true, Current: current, Limit: limit, Action: action}, nil
	}
	allowed := current < limit
	if !allowed {
		g.logger.Debug().Err(domain.ErrQuotaExceeded).Str("user_id", userID).Str("action", string(action)).Int("limit", limit).Msg("quota: denied")
	}
	return Decision{Allowed: allowed, Current: current, Limit: limit, Action: action}, nil
}

// RecordUsage increments the matching counter by one. The increment is
// unconditional; callers must have passed CheckAllowed first and only call
// this on the success path of the protected action. A storage failure is
// logged and swallowed: the action already succeeded, so the worst case is a
// one-event undercount.
func (g *Gate) RecordUsage(ctx context.Context, userID string, action domain.ActionType) bool {
	if err := validateAction(action); err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Msg("quota: record called with invalid action")
		return false
	}
	if err := g.usage.Increment(ctx, userID, action); err != nil {
		g.logger.Warn().Err(err).Str("user_id", userID).Str("action", string(action)).Msg("quota: usage recording failed")
		return false
	}
	return true
}

// Consume performs the check and the increment as one conditional update, so
// two concurrent requests can never both slip under the same last unit of
// headroom. Denial is a normal decision, not an error. Ledger failures fail
// closed exactly like CheckAllowed.
func (g *Gate) Consume(ctx context.Context, userID string, plan domain.PlanTier, action domain.ActionType) (Decision, error) {
	if err := validateAction(action); err != nil {
		return Decision{Action: action}, err
	}
	if plan.IsAdmin() {
		return Decision{Allowed: true, Current: 0, Limit: domain.UnlimitedQuota, Action: action}, nil
	}

	limit := domain.LimitsFor(plan).Limit(action)
	if _, err := g.reconciled(ctx, userID); err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Str("action", string(action)).Msg("quota: ledger read failed, denying")
		return Decision{Allowed: false, Limit: limit, Action: action}, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	count, ok, err := g.usage.IncrementIfBelow(ctx, userID, action, limit)
	if err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Str("action", string(action)).Msg("quota: conditional increment failed, denying")
		return Decision{Allowed: false, Limit: limit, Action: action}, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	if !ok {
		g.logger.Debug().Err(domain.ErrQuotaExceeded).Str("user_id", userID).Str("action", string(action)).Int("limit", limit).Msg("quota: denied")
	}
	return Decision{Allowed: ok, Current: count, Limit: limit, Action: action}, nil
}

// reconciled loads the ledger and applies the lazy month rollover when the
// stored period no longer matches the current month. Rollover fires at most
// once per month per user because Reset moves period_start into the current
// month.
func (g *Gate) reconciled(ctx context.Context, userID string) (*domain.UsageLedger, error) {
	now := g.now()
	ledger, err := g.usage.GetOrCreate(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if ledger.Stale(now) {
		ledger, err = g.usage.Reset(ctx, userID, now)
		if err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

func validateAction(action domain.ActionType) error {
	_, err := domain.ParseActionType(string(action))
	return err
}
