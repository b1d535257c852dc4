// Package insights reduces a user's recent post history to the frequency
// statistics the calendar planner consumes as heuristics. All functions are
// pure; a missing or empty history degrades to a neutral snapshot and never
// blocks scheduling.
package insights

import (
	"sort"

	"server/internal/domain"
)

// MaxHistoryWindow caps how many recent records feed one snapshot. Callers
// normally bound the read tighter through configuration; the cap here only
// protects against an unbounded history slice.
const MaxHistoryWindow = 50

// Analyze aggregates the given records, which must be ordered newest first.
// Records beyond MaxHistoryWindow are ignored.
func Analyze(records []domain.PostRecord) domain.PerformanceSnapshot {
	if len(records) > MaxHistoryWindow {
		records = records[:MaxHistoryWindow]
	}

	snap := domain.PerformanceSnapshot{
		SampleSize:     len(records),
		PlatformCounts: map[string]int{},
		PostTypeCounts: map[string]int{},
		HourCounts:     map[int]int{},
		ThemeCounts:    map[string]int{},
	}
	if len(records) == 0 {
		return snap
	}

	totalLength := 0
	totalHashtags := 0
	snap.MinLength = records[0].ContentLength
	for _, rec := range records {
		if rec.Platform != "" {
			snap.PlatformCounts[rec.Platform]++
		}
		if rec.PostType != "" {
			snap.PostTypeCounts[rec.PostType]++
		}
		if rec.Theme != "" {
			snap.ThemeCounts[rec.Theme]++
		}
		if !rec.ScheduledTime.IsZero() {
			snap.HourCounts[rec.ScheduledTime.Hour()]++
		}
		totalLength += rec.ContentLength
		totalHashtags += len(rec.Hashtags)
		if rec.ContentLength < snap.MinLength {
			snap.MinLength = rec.ContentLength
		}
		if rec.ContentLength > snap.MaxLength {
			snap.MaxLength = rec.ContentLength
		}
	}
	snap.AvgLength = float64(totalLength) / float64(len(records))
	snap.AvgHashtags = float64(totalHashtags) / float64(len(records))
	return snap
}

// TopPlatforms returns up to n platforms by descending frequency. Ties keep
// the order of first appearance in the source records, so more recent
// platforms win.
func TopPlatforms(records []domain.PostRecord, n int) []string {
	keys := make([]string, 0)
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, rec := range records {
		if rec.Platform == "" {
			continue
		}
		if _, ok := counts[rec.Platform]; !ok {
			keys = append(keys, rec.Platform)
			firstSeen[rec.Platform] = i
		}
		counts[rec.Platform]++
	}
	sort.SliceStable(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return firstSeen[keys[a]] < firstSeen[keys[b]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// TopHours returns up to n posting hours by descending frequency out of a
// snapshot, ties broken by the earlier hour for stable output.
func TopHours(snap domain.PerformanceSnapshot, n int) []int {
	hours := make([]int, 0, len(snap.HourCounts))
	for h := range snap.HourCounts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(a, b int) bool {
		if snap.HourCounts[hours[a]] != snap.HourCounts[hours[b]] {
			return snap.HourCounts[hours[a]] > snap.HourCounts[hours[b]]
		}
		return hours[a] < hours[b]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// TopThemes returns up to n themes by descending frequency from the raw
// records, recency breaking ties the same way TopPlatforms does.
func TopThemes(records []domain.PostRecord, n int) []string {
	keys := make([]string, 0)
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, rec := range records {
		if rec.Theme == "" {
			continue
		}
		if _, ok := counts[rec.Theme]; !ok {
			keys = append(keys, rec.Theme)
			firstSeen[rec.Theme] = i
		}
		counts[rec.Theme]++
	}
	sort.SliceStable(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return firstSeen[keys[a]] < firstSeen[keys[b]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
