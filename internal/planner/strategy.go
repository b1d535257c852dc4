// Package planner builds weekly content strategies and expands them into
// ordered calendar entries. Generation is deterministic for a fixed reference
// time and recovers from malformed input by substituting fixed defaults,
// tagged on the result so callers can tell degraded output from real output.
package planner

import (
	"strings"
	"time"

	"server/internal/domain"
	"server/internal/insights"
)

// DefaultPlatform is the platform used whenever none can be resolved.
const DefaultPlatform = "Instagram"

// DefaultPostsPerPlatform is the weekly cadence used when the profile and
// overrides are silent: one post per day.
const DefaultPostsPerPlatform = 7

// MaxPostsPerPlatform caps the weekly cadence a request can ask for. Four
// slots per day over the 7-day horizon is the densest schedule the slot
// tables can express.
const MaxPostsPerPlatform = 28

var defaultThemes = []string{"Product showcase", "Tips & tricks", "Behind the scenes"}

// defaultContentMix spreads the five content categories evenly.
var defaultContentMix = map[string]int{
	"educational":    20,
	"promotional":    20,
	"entertaining":   20,
	"behind_scenes":  20,
	"user_generated": 20,
}

// Overrides are explicit per-request strategy inputs. Zero values defer to
// the profile and the defaults.
type Overrides struct {
	Platforms        []string
	Themes           []string
	ContentMix       map[string]int
	PostsPerPlatform int
}

// DefaultStrategy is the fixed strategy substituted when building one from
// profile data fails.
func DefaultStrategy(now time.Time) domain.Strategy {
	return domain.Strategy{
		Platforms:        []string{DefaultPlatform},
		Themes:           append([]string(nil), defaultThemes...),
		ContentMix:       copyMix(defaultContentMix),
		PostsPerPlatform: DefaultPostsPerPlatform,
		CampaignName:     CampaignName(now),
	}
}

// BuildStrategy merges explicit overrides, the user's profile and analyzer
// heuristics into one strategy. Precedence per field: override, then profile,
// then historical top entries, then the fixed default. The returned bool
// reports whether the fixed default strategy had to be substituted wholesale.
func BuildStrategy(profile *domain.Profile, history []domain.PostRecord, ov Overrides, now time.Time) (domain.Strategy, bool) {
	s := domain.Strategy{CampaignName: CampaignName(now)}

	s.Platforms = dedupe(ov.Platforms)
	if len(s.Platforms) == 0 && profile != nil {
		s.Platforms = dedupe(profile.Platforms)
	}
	if len(s.Platforms) == 0 {
		s.Platforms = insights.TopPlatforms(history, 3)
	}
	if len(s.Platforms) == 0 {
		s.Platforms = []string{DefaultPlatform}
	}

	s.Themes = dedupe(ov.Themes)
	if len(s.Themes) == 0 && profile != nil {
		s.Themes = dedupe(profile.Themes)
	}
	if len(s.Themes) == 0 {
		s.Themes = insights.TopThemes(history, 3)
	}
	if len(s.Themes) == 0 {
		s.Themes = append([]string(nil), defaultThemes...)
	}

	s.ContentMix = copyMix(ov.ContentMix)
	if len(s.ContentMix) == 0 {
		s.ContentMix = copyMix(defaultContentMix)
	}

	s.PostsPerPlatform = ov.PostsPerPlatform
	if s.PostsPerPlatform <= 0 && profile != nil {
		s.PostsPerPlatform = profile.PostsPerWeek
	}
	if s.PostsPerPlatform <= 0 {
		s.PostsPerPlatform = DefaultPostsPerPlatform
	}
	if s.PostsPerPlatform > MaxPostsPerPlatform {
		s.PostsPerPlatform = MaxPostsPerPlatform
	}

	if err := validate(s); err != nil {
		return DefaultStrategy(now), true
	}
	return s, false
}

// CampaignName labels the plan after the Monday of the week containing now.
func CampaignName(now time.Time) string {
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	return "Week of " + monday.Format("2006-01-02")
}

func validate(s domain.Strategy) error {
	if len(s.Platforms) == 0 || len(s.Themes) == 0 || s.PostsPerPlatform <= 0 {
		return domain.ErrInvalidStrategy
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func copyMix(mix map[string]int) map[string]int {
	if len(mix) == 0 {
		return nil
	}
	out := make(map[string]int, len(mix))
	for k, v := range mix {
		out[k] = v
	}
	return out
}
