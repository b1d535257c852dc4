package planner

import (
	"testing"
	"time"

	"server/internal/domain"
)

// Wednesday, so the horizon spans a weekend.
var refNow = time.Date(2026, time.August, 26, 15, 4, 5, 0, time.UTC)

func baseStrategy() domain.Strategy {
	return domain.Strategy{
		Platforms: []string{"Instagram", "TikTok"},
		Themes:    []string{"Tips", "Trends"},
		ContentMix: map[string]int{
			"educational":    40,
			"promotional":    20,
			"entertaining":   20,
			"behind_scenes":  10,
			"user_generated": 10,
		},
		PostsPerPlatform: 7,
		CampaignName:     "Week of 2026-08-24",
	}
}

func TestGenerateHorizon(t *testing.T) {
	plan := Generate(baseStrategy(), refNow)
	if plan.FallbackUsed {
		t.Fatal("valid strategy must not fall back")
	}
	if len(plan.Entries) != 14 {
		t.Fatalf("entries = %d, want 14", len(plan.Entries))
	}

	allowed := map[string]bool{"Instagram": true, "TikTok": true}
	days := map[string]bool{}
	for i, e := range plan.Entries {
		if !allowed[e.Platform] {
			t.Fatalf("entry %d has platform %q outside the strategy", i, e.Platform)
		}
		days[e.Date.Format("2006-01-02")] = true
		want := "Instagram"
		if i%2 == 1 {
			want = "TikTok"
		}
		if e.Platform != want {
			t.Fatalf("entry %d platform = %q, want round-robin %q", i, e.Platform, want)
		}
	}
	if len(days) != 7 {
		t.Fatalf("entries span %d distinct days, want 7", len(days))
	}
	start := plan.Entries[0].Date
	for d := 0; d < 7; d++ {
		if !days[start.AddDate(0, 0, d).Format("2006-01-02")] {
			t.Fatalf("day %d missing from horizon", d)
		}
	}
}

func TestGenerateWeekendSlots(t *testing.T) {
	plan := Generate(baseStrategy(), refNow)
	weekend := map[string]bool{"10:00": true, "14:00": true, "19:00": true}
	for _, e := range plan.Entries {
		switch e.Date.Weekday() {
		case time.Saturday, time.Sunday:
			if !weekend[e.TimeSlot] {
				t.Fatalf("weekend entry on %s uses weekday slot %s", e.Date.Format("2006-01-02"), e.TimeSlot)
			}
		default:
			if weekend[e.TimeSlot] {
				t.Fatalf("weekday entry on %s uses weekend slot %s", e.Date.Format("2006-01-02"), e.TimeSlot)
			}
		}
	}
}

func TestGenerateSinglePlatformThemeRotation(t *testing.T) {
	s := baseStrategy()
	s.Platforms = []string{"Instagram"}
	plan := Generate(s, refNow)
	if len(plan.Entries) != 7 {
		t.Fatalf("entries = %d, want 7", len(plan.Entries))
	}
	wantThemes := []string{"Tips", "Trends", "Tips", "Trends", "Tips", "Trends", "Tips"}
	for i, e := range plan.Entries {
		if e.Platform != "Instagram" {
			t.Fatalf("entry %d platform = %q", i, e.Platform)
		}
		if e.Topic != wantThemes[i] {
			t.Fatalf("entry %d topic = %q, want %q", i, e.Topic, wantThemes[i])
		}
	}
}

func TestGenerateNeverExceedsTotal(t *testing.T) {
	s := baseStrategy()
	s.PostsPerPlatform = 2 // total 4 < 7 days: horizon ends early
	plan := Generate(s, refNow)
	if len(plan.Entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(plan.Entries))
	}
}

func TestGenerateFallbackOnEmptyPlatforms(t *testing.T) {
	s := baseStrategy()
	s.Platforms = nil
	plan := Generate(s, refNow)
	if !plan.FallbackUsed {
		t.Fatal("fallback not flagged")
	}
	if len(plan.Entries) == 0 {
		t.Fatal("fallback must still return entries")
	}
	for i, e := range plan.Entries {
		if e.TimeSlot != "12:00" {
			t.Fatalf("fallback entry %d slot = %q, want 12:00", i, e.TimeSlot)
		}
		if e.PostType != "Educational tips" {
			t.Fatalf("fallback entry %d post type = %q", i, e.PostType)
		}
		if e.Platform != DefaultPlatform {
			t.Fatalf("fallback entry %d platform = %q", i, e.Platform)
		}
	}
	// Deterministic: two runs agree entry by entry.
	again := Generate(s, refNow)
	if len(again.Entries) != len(plan.Entries) {
		t.Fatalf("fallback not deterministic: %d vs %d entries", len(again.Entries), len(plan.Entries))
	}
	for i := range plan.Entries {
		if plan.Entries[i] != again.Entries[i] {
			t.Fatalf("fallback entry %d differs between runs", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(baseStrategy(), refNow)
	second := Generate(baseStrategy(), refNow)
	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Fatalf("entry %d differs between identical runs", i)
		}
	}
}

func TestExpandContentMix(t *testing.T) {
	tests := []struct {
		name string
		mix  map[string]int
		want []string
	}{
		{
			name: "standard five-way mix",
			mix: map[string]int{
				"educational":    40,
				"promotional":    20,
				"entertaining":   20,
				"behind_scenes":  10,
				"user_generated": 10,
			},
			// weight/20 floored min 1: educational twice, the rest once,
			// ordered by weight then name. The rotation approximates the
			// configured proportions; it does not reproduce them exactly.
			want: []string{
				"Educational tips", "Educational tips",
				"Entertaining content", "Promotional offer",
				"Behind-the-scenes", "User-generated content",
			},
		},
		{
			name: "empty mix uses default rotation",
			mix:  nil,
			want: []string{"Educational tips", "Promotional offer", "Behind-the-scenes"},
		},
		{
			name: "unknown category passes through",
			mix:  map[string]int{"memes": 60},
			want: []string{"memes", "memes", "memes"},
		},
		{
			name: "non-positive weights dropped",
			mix:  map[string]int{"educational": 0, "promotional": -5},
			want: []string{"Educational tips", "Promotional offer", "Behind-the-scenes"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := expandContentMix(tc.mix)
			if len(got) != len(tc.want) {
				t.Fatalf("rotation = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("rotation = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSlotsForMondayIndexedWeek(t *testing.T) {
	saturday := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	if got := slotsFor(saturday); len(got) != 3 {
		t.Fatalf("saturday slots = %v", got)
	}
	if got := slotsFor(sunday); len(got) != 3 {
		t.Fatalf("sunday slots = %v", got)
	}
	if got := slotsFor(monday); len(got) != 4 {
		t.Fatalf("monday slots = %v", got)
	}
}
