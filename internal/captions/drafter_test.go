package captions

import (
	"strings"
	"testing"
)

func TestDraftTitleCasesTheme(t *testing.T) {
	got := Draft("behind the scenes", "Instagram", "en", nil)
	if !strings.HasPrefix(got, "Behind The Scenes:") {
		t.Fatalf("caption = %q, want title-cased theme prefix", got)
	}
	if !strings.Contains(got, "Save this post") {
		t.Fatalf("caption = %q, want Instagram hook", got)
	}
}

func TestDraftAppendsHashtags(t *testing.T) {
	got := Draft("tips", "TikTok", "en", []string{"#smallbiz", "#tips"})
	if !strings.HasSuffix(got, "#smallbiz #tips") {
		t.Fatalf("caption = %q, want trailing hashtags", got)
	}
}

func TestDraftDefaults(t *testing.T) {
	got := Draft("  ", "Mastodon", "xx-not-a-locale", nil)
	if !strings.Contains(got, "Our Latest Update") {
		t.Fatalf("caption = %q, want default theme", got)
	}
	if !strings.Contains(got, defaultHook) {
		t.Fatalf("caption = %q, want default hook for unknown platform", got)
	}
}

func TestDraftDeterministic(t *testing.T) {
	a := Draft("trends", "Facebook", "id", []string{"#umkm"})
	b := Draft("trends", "Facebook", "id", []string{"#umkm"})
	if a != b {
		t.Fatalf("drafting not deterministic: %q vs %q", a, b)
	}
}
