package planner

import (
	"sort"
	"time"

	"server/internal/domain"
)

// HorizonDays is the fixed scheduling horizon.
const HorizonDays = 7

// mixGranularity converts a content-mix weight into rotation repetitions:
// weight/20 floored, minimum one occurrence per present category. The
// resulting rotation only approximates the configured proportions; the
// formula is kept as-is intentionally.
const mixGranularity = 20

var (
	weekdaySlots = []string{"09:00", "12:00", "18:00", "21:00"}
	weekendSlots = []string{"10:00", "14:00", "19:00"}

	defaultRotation = []string{"Educational tips", "Promotional offer", "Behind-the-scenes"}
)

const fallbackSlot = "12:00"

// postTypeLabels maps content-mix category keys to the post-type labels
// emitted on calendar entries. Unknown categories pass through verbatim.
var postTypeLabels = map[string]string{
	"educational":    "Educational tips",
	"promotional":    "Promotional offer",
	"entertaining":   "Entertaining content",
	"behind_scenes":  "Behind-the-scenes",
	"user_generated": "User-generated content",
}

// Plan is the engine's result. FallbackUsed distinguishes the fixed default
// calendar from one generated from the strategy proper.
type Plan struct {
	Entries      []domain.CalendarEntry
	FallbackUsed bool
}

// Generate expands the strategy into an ordered entry sequence over a 7-day
// horizon starting at now's date. Platform, theme and post type rotate by the
// global entry index; the time-of-day slot rotates by the index within the
// day, drawing from a weekday or weekend candidate set. Generation never
// fails: a malformed strategy yields the fixed fallback calendar instead.
func Generate(strategy domain.Strategy, now time.Time) Plan {
	if validate(strategy) != nil {
		return fallbackPlan(strategy, now)
	}

	platforms := strategy.Platforms
	themes := strategy.Themes
	rotation := expandContentMix(strategy.ContentMix)

	total := strategy.PostsPerPlatform * len(platforms)
	postsPerDay := total / HorizonDays
	if postsPerDay < 1 {
		postsPerDay = 1
	}

	entries := make([]domain.CalendarEntry, 0, total)
	start := dateOf(now)
	for day := 0; day < HorizonDays && len(entries) < total; day++ {
		date := start.AddDate(0, 0, day)
		slots := slotsFor(date)
		for i := 0; i < postsPerDay && len(entries) < total; i++ {
			idx := len(entries)
			entries = append(entries, domain.CalendarEntry{
				Date:        date,
				TimeSlot:    slots[i%len(slots)],
				Platform:    platforms[idx%len(platforms)],
				Topic:       themes[idx%len(themes)],
				PostType:    rotation[idx%len(rotation)],
				ContentType: domain.ContentTypeImageText,
				Status:      domain.EntryStatusScheduled,
				Campaign:    strategy.CampaignName,
			})
		}
	}
	return Plan{Entries: entries}
}

// fallbackPlan emits the fixed default calendar: one noon post per horizon
// day, post type "Educational tips", themes cycled from the strategy when it
// has any, capped at posts_per_platform x |platforms| entries. It runs once
// and its result is final for the request; it is not a retry.
func fallbackPlan(strategy domain.Strategy, now time.Time) Plan {
	platforms := strategy.Platforms
	if len(platforms) == 0 {
		platforms = []string{DefaultPlatform}
	}
	themes := strategy.Themes
	if len(themes) == 0 {
		themes = defaultThemes[:1]
	}
	perPlatform := strategy.PostsPerPlatform
	if perPlatform <= 0 {
		perPlatform = DefaultPostsPerPlatform
	}
	total := perPlatform * len(platforms)
	if total > HorizonDays {
		total = HorizonDays
	}

	campaign := strategy.CampaignName
	if campaign == "" {
		campaign = CampaignName(now)
	}

	entries := make([]domain.CalendarEntry, 0, total)
	start := dateOf(now)
	for day := 0; day < total; day++ {
		entries = append(entries, domain.CalendarEntry{
			Date:        start.AddDate(0, 0, day),
			TimeSlot:    fallbackSlot,
			Platform:    platforms[day%len(platforms)],
			Topic:       themes[day%len(themes)],
			PostType:    defaultRotation[0],
			ContentType: domain.ContentTypeImageText,
			Status:      domain.EntryStatusScheduled,
			Campaign:    campaign,
		})
	}
	return Plan{Entries: entries, FallbackUsed: true}
}

// expandContentMix turns relative category weights into a finite post-type
// rotation. Categories are ordered by descending weight, then name, so the
// rotation is stable across runs. A mix that yields nothing falls back to
// the default three-element rotation.
func expandContentMix(mix map[string]int) []string {
	type entry struct {
		key    string
		weight int
	}
	ordered := make([]entry, 0, len(mix))
	for k, w := range mix {
		if w <= 0 {
			continue
		}
		ordered = append(ordered, entry{key: k, weight: w})
	}
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].weight != ordered[b].weight {
			return ordered[a].weight > ordered[b].weight
		}
		return ordered[a].key < ordered[b].key
	})

	rotation := make([]string, 0, len(ordered))
	for _, e := range ordered {
		reps := e.weight / mixGranularity
		if reps < 1 {
			reps = 1
		}
		label := postTypeLabels[e.key]
		if label == "" {
			label = e.key
		}
		for i := 0; i < reps; i++ {
			rotation = append(rotation, label)
		}
	}
	if len(rotation) == 0 {
		return append([]string(nil), defaultRotation...)
	}
	return rotation
}

// slotsFor selects the candidate time set for a date: four weekday slots or
// three weekend slots, using a Monday-indexed week.
func slotsFor(date time.Time) []string {
	if mondayIndex(date) >= 5 {
		return weekendSlots
	}
	return weekdaySlots
}

func mondayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
