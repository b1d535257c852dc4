package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

type fakeUsageRepo struct {
	ledgers map[string]*domain.UsageLedger
	fail    bool
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{ledgers: map[string]*domain.UsageLedger{}}
}

var errStorageDown = errors.New("storage down")

func (f *fakeUsageRepo) GetOrCreate(_ context.Context, userID string, now time.Time) (*domain.UsageLedger, error) {
	if f.fail {
		return nil, errStorageDown
	}
	if l, ok := f.ledgers[userID]; ok {
		cp := *l
		return &cp, nil
	}
	l := &domain.UsageLedger{UserID: userID, PeriodStart: now}
	f.ledgers[userID] = l
	cp := *l
	return &cp, nil
}

func (f *fakeUsageRepo) Reset(_ context.Context, userID string, now time.Time) (*domain.UsageLedger, error) {
	if f.fail {
		return nil, errStorageDown
	}
	l := &domain.UsageLedger{UserID: userID, PeriodStart: now}
	f.ledgers[userID] = l
	cp := *l
	return &cp, nil
}

func (f *fakeUsageRepo) Increment(_ context.Context, userID string, action domain.ActionType) error {
	if f.fail {
		return errStorageDown
	}
	l, ok := f.ledgers[userID]
	if !ok {
		return errStorageDown
	}
	if action == domain.ActionImage {
		l.ImagesUsed++
	} else {
		l.TasksUsed++
	}
	return nil
}

func (f *fakeUsageRepo) IncrementIfBelow(_ context.Context, userID string, action domain.ActionType, limit int) (int, bool, error) {
	if f.fail {
		return 0, false, errStorageDown
	}
	l, ok := f.ledgers[userID]
	if !ok {
		return 0, false, errStorageDown
	}
	current := l.Used(action)
	if limit != domain.UnlimitedQuota && current >= limit {
		return current, false, nil
	}
	if action == domain.ActionImage {
		l.ImagesUsed++
	} else {
		l.TasksUsed++
	}
	return l.Used(action), true, nil
}

func newTestGate(repo *fakeUsageRepo, now time.Time) *Gate {
	g := NewGate(repo, zerolog.Nop())
	g.now = func() time.Time { return now }
	return g
}

func TestCheckAllowedInvalidAction(t *testing.T) {
	g := newTestGate(newFakeUsageRepo(), time.Now())
	_, err := g.CheckAllowed(context.Background(), "u1", domain.PlanFreemium, domain.ActionType("video"))
	if !errors.Is(err, domain.ErrInvalidActionType) {
		t.Fatalf("expected ErrInvalidActionType, got %v", err)
	}
}

func TestCheckAllowedAdminBypassesLedger(t *testing.T) {
	repo := newFakeUsageRepo()
	repo.fail = true // would fail closed for any other plan
	g := newTestGate(repo, time.Now())

	d, err := g.CheckAllowed(context.Background(), "u1", domain.PlanAdmin, domain.ActionTask)
	if err != nil {
		t.Fatalf("CheckAllowed returned error: %v", err)
	}
	if !d.Allowed || d.Limit != domain.UnlimitedQuota || d.Current != 0 {
		t.Fatalf("unexpected admin decision: %+v", d)
	}
}

func TestCheckAllowedUnlimitedPlan(t *testing.T) {
	repo := newFakeUsageRepo()
	now := time.Now()
	repo.ledgers["u1"] = &domain.UsageLedger{UserID: "u1", TasksUsed: 99999, PeriodStart: now}
	g := newTestGate(repo, now)

	d, err := g.CheckAllowed(context.Background(), "u1", domain.PlanPro, domain.ActionTask)
	if err != nil {
		t.Fatalf("CheckAllowed returned error: %v", err)
	}
	if !d.Allowed || d.Limit != domain.UnlimitedQuota {
		t.Fatalf("unexpected decision for unlimited plan: %+v", d)
	}
}

func TestCheckAllowedFreemiumTaskBoundary(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		used    int
		allowed bool
	}{
		{"under limit", 99, true},
		{"at limit", 100, false},
		{"fresh ledger", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUsageRepo()
			repo.ledgers["u1"] = &domain.UsageLedger{UserID: "u1", TasksUsed: tc.used, PeriodStart: now}
			g := newTestGate(repo, now)

			d, err := g.CheckAllowed(context.Background(), "u1", domain.PlanFreemium, domain.ActionTask)
			if err != nil {
				t.Fatalf("CheckAllowed returned error: %v", err)
			}
			if d.Allowed != tc.allowed {
				t.Fatalf("allowed = %v, want %v (used=%d)", d.Allowed, tc.allowed, tc.used)
			}
			if d.Current != tc.used || d.Limit != 100 {
				t.Fatalf("decision = %+v, want current=%d limit=100", d, tc.used)
			}
		})
	}
}

func TestCheckAllowedFailsClosed(t *testing.T) {
	repo := newFakeUsageRepo()
	repo.fail = true
	g := newTestGate(repo, time.Now())

	d, err := g.CheckAllowed(context.Background(), "u1", domain.PlanFreemium, domain.ActionTask)
	if !errors.Is(err, domain.ErrLedgerUnavailable) {
		t.Fatalf("expected ErrLedgerUnavailable, got %v", err)
	}
	if d.Allowed {
		t.Fatal("gate must fail closed when the ledger cannot be read")
	}
}

func TestRolloverResetsCounters(t *testing.T) {
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	repo := newFakeUsageRepo()
	repo.ledgers["u1"] = &domain.UsageLedger{
		UserID:      "u1",
		TasksUsed:   57,
		ImagesUsed:  4,
		PeriodStart: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	g := newTestGate(repo, now)

	d, err := g.CheckAllowed(context.Background(), "u1", domain.PlanFreemium, domain.ActionTask)
	if err != nil {
		t.Fatalf("CheckAllowed returned error: %v", err)
	}
	if d.Current != 0 {
		t.Fatalf("counter not reset on rollover: %+v", d)
	}
	stored := repo.ledgers["u1"]
	if stored.TasksUsed != 0 || stored.ImagesUsed != 0 {
		t.Fatalf("ledger counters not zeroed: %+v", stored)
	}
	if stored.PeriodStart.Month() != now.Month() || stored.PeriodStart.Year() != now.Year() {
		t.Fatalf("period_start not advanced: %v", stored.PeriodStart)
	}
}

func TestRolloverIdempotentWithinMonth(t *testing.T) {
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	repo := newFakeUsageRepo()
	repo.ledgers["u1"] = &domain.UsageLedger{
		UserID:      "u1",
		TasksUsed:   57,
		PeriodStart: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	g := newTestGate(repo, now)
	ctx := context.Background()

	if _, err := g.CheckAllowed(ctx, "u1", domain.PlanFreemium, domain.ActionTask); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if !g.RecordUsage(ctx, "u1", domain.ActionTask) {
		t.Fatal("RecordUsage failed")
	}
	d, err := g.CheckAllowed(ctx, "u1", domain.PlanFreemium, domain.ActionTask)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if d.Current != 1 {
		t.Fatalf("second check re-zeroed the counter: %+v", d)
	}
}

func TestRecordUsageSwallowsStorageFailure(t *testing.T) {
	repo := newFakeUsageRepo()
	now := time.Now()
	repo.ledgers["u1"] = &domain.UsageLedger{UserID: "u1", PeriodStart: now}
	g := newTestGate(repo, now)

	repo.fail = true
	if g.RecordUsage(context.Background(), "u1", domain.ActionImage) {
		t.Fatal("RecordUsage should report false on storage failure")
	}
	// The failure must not surface anywhere else: a later successful call
	// continues from the unchanged counter.
	repo.fail = false
	if !g.RecordUsage(context.Background(), "u1", domain.ActionImage) {
		t.Fatal("RecordUsage failed after storage recovered")
	}
	if repo.ledgers["u1"].ImagesUsed != 1 {
		t.Fatalf("images_used = %d, want 1", repo.ledgers["u1"].ImagesUsed)
	}
}

// Consume closes the check-then-increment race by making the increment
// conditional on remaining headroom in a single repository operation. This is
// a deliberate hardening over the split pair, which permits transient
// over-limit usage under concurrency.
func TestConsumeStopsExactlyAtLimit(t *testing.T) {
	now := time.Now()
	repo := newFakeUsageRepo()
	repo.ledgers["u1"] = &domain.UsageLedger{UserID: "u1", ImagesUsed: 23, PeriodStart: now}
	g := newTestGate(repo, now)
	ctx := context.Background()

	// freemium image limit is 25: two more succeed, the third is denied.
	for i := 0; i < 2; i++ {
		d, err := g.Consume(ctx, "u1", domain.PlanFreemium, domain.ActionImage)
		if err != nil {
			t.Fatalf("Consume %d returned error: %v", i, err)
		}
		if !d.Allowed {
			t.Fatalf("Consume %d denied with headroom left: %+v", i, d)
		}
	}
	d, err := g.Consume(ctx, "u1", domain.PlanFreemium, domain.ActionImage)
	if err != nil {
		t.Fatalf("Consume returned error: %v", err)
	}
	if d.Allowed {
		t.Fatalf("Consume allowed past the limit: %+v", d)
	}
	if repo.ledgers["u1"].ImagesUsed != 25 {
		t.Fatalf("images_used = %d, want exactly 25", repo.ledgers["u1"].ImagesUsed)
	}
}
