package planner

import (
	"testing"
	"time"

	"server/internal/domain"
)

func TestBuildStrategyDefaults(t *testing.T) {
	s, fallback := BuildStrategy(nil, nil, Overrides{}, refNow)
	if fallback {
		t.Fatal("defaults should satisfy validation without the wholesale fallback")
	}
	if len(s.Platforms) != 1 || s.Platforms[0] != DefaultPlatform {
		t.Fatalf("platforms = %v, want [%s]", s.Platforms, DefaultPlatform)
	}
	if len(s.Themes) != 3 {
		t.Fatalf("themes = %v, want the three defaults", s.Themes)
	}
	if s.PostsPerPlatform != DefaultPostsPerPlatform {
		t.Fatalf("posts per platform = %d, want %d", s.PostsPerPlatform, DefaultPostsPerPlatform)
	}
	if len(s.ContentMix) != 5 {
		t.Fatalf("content mix = %v, want the even five-way default", s.ContentMix)
	}
}

func TestBuildStrategyPrecedence(t *testing.T) {
	profile := &domain.Profile{
		UserID:       "u1",
		Platforms:    []string{"Facebook"},
		Themes:       []string{"Launches"},
		PostsPerWeek: 3,
	}
	ov := Overrides{Platforms: []string{"TikTok", "TikTok", " "}, PostsPerPlatform: 5}

	s, fallback := BuildStrategy(profile, nil, ov, refNow)
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if len(s.Platforms) != 1 || s.Platforms[0] != "TikTok" {
		t.Fatalf("platforms = %v, want deduplicated override [TikTok]", s.Platforms)
	}
	if len(s.Themes) != 1 || s.Themes[0] != "Launches" {
		t.Fatalf("themes = %v, want profile themes", s.Themes)
	}
	if s.PostsPerPlatform != 5 {
		t.Fatalf("posts per platform = %d, want override 5", s.PostsPerPlatform)
	}
}

func TestBuildStrategyFromHistory(t *testing.T) {
	history := []domain.PostRecord{
		{Platform: "TikTok", Theme: "Trends"},
		{Platform: "TikTok", Theme: "Trends"},
		{Platform: "Instagram", Theme: "Tips"},
	}
	s, fallback := BuildStrategy(nil, history, Overrides{}, refNow)
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if len(s.Platforms) == 0 || s.Platforms[0] != "TikTok" {
		t.Fatalf("platforms = %v, want history leader TikTok first", s.Platforms)
	}
	if len(s.Themes) == 0 || s.Themes[0] != "Trends" {
		t.Fatalf("themes = %v, want history leader Trends first", s.Themes)
	}
}

func TestBuildStrategyCapsCadence(t *testing.T) {
	ov := Overrides{
		Platforms:        []string{"Instagram", "TikTok"},
		PostsPerPlatform: 1_000_000,
	}
	s, fallback := BuildStrategy(nil, nil, ov, refNow)
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if s.PostsPerPlatform != MaxPostsPerPlatform {
		t.Fatalf("posts per platform = %d, want cap %d", s.PostsPerPlatform, MaxPostsPerPlatform)
	}

	plan := Generate(s, refNow)
	if want := MaxPostsPerPlatform * 2; len(plan.Entries) != want {
		t.Fatalf("entries = %d, want %d", len(plan.Entries), want)
	}
}

func TestCampaignNameUsesWeeksMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"wednesday", time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC), "Week of 2026-08-24"},
		{"monday itself", time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC), "Week of 2026-08-24"},
		{"sunday", time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC), "Week of 2026-08-24"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CampaignName(tc.now); got != tc.want {
				t.Fatalf("CampaignName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDefaultStrategyGeneratesFullWeek(t *testing.T) {
	plan := Generate(DefaultStrategy(refNow), refNow)
	if plan.FallbackUsed {
		t.Fatal("default strategy must be valid in its own right")
	}
	if len(plan.Entries) != 7 {
		t.Fatalf("entries = %d, want 7", len(plan.Entries))
	}
}
