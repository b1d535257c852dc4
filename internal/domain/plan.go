package domain

// PlanTier enumerates billing plans.
type PlanTier string

const (
	PlanFreemium PlanTier = "freemium"
	PlanStarter  PlanTier = "starter"
	PlanAdvanced PlanTier = "advanced"
	PlanPro      PlanTier = "pro"
	PlanAdmin    PlanTier = "admin"
)

// UnlimitedQuota marks an action without a monthly cap.
const UnlimitedQuota = -1

// PlanLimits holds the monthly caps for the two metered actions.
type PlanLimits struct {
	TaskLimit  int
	ImageLimit int
}

// planLimits is the authoritative tier table. Values are per calendar month.
var planLimits = map[PlanTier]PlanLimits{
	PlanFreemium: {TaskLimit: 100, ImageLimit: 25},
	PlanStarter:  {TaskLimit: 1000, ImageLimit: 100},
	PlanAdvanced: {TaskLimit: 5000, ImageLimit: 500},
	PlanPro:      {TaskLimit: UnlimitedQuota, ImageLimit: UnlimitedQuota},
	PlanAdmin:    {TaskLimit: UnlimitedQuota, ImageLimit: UnlimitedQuota},
}

// LimitsFor returns the caps for a tier. Unknown tiers resolve to the
// freemium limits so a mislabeled plan never grants extra headroom.
func LimitsFor(tier PlanTier) PlanLimits {
	if limits, ok := planLimits[tier]; ok {
		return limits
	}
	return planLimits[PlanFreemium]
}

// Limit returns the cap for a single action type.
func (p PlanLimits) Limit(action ActionType) int {
	if action == ActionImage {
		return p.ImageLimit
	}
	return p.TaskLimit
}

// IsAdmin reports whether the tier bypasses usage accounting entirely.
func (t PlanTier) IsAdmin() bool {
	return t == PlanAdmin
}

// ParsePlanTier normalizes a stored plan label. Unknown labels fall back to
// freemium rather than failing, matching the restrictive default of LimitsFor.
func ParsePlanTier(s string) PlanTier {
	switch PlanTier(s) {
	case PlanFreemium, PlanStarter, PlanAdvanced, PlanPro, PlanAdmin:
		return PlanTier(s)
	}
	return PlanFreemium
}
