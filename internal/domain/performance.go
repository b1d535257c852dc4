package domain

import "time"

// PostRecord is one historical content record as read from storage, most
// recent first. It is the analyzer's only input.
type PostRecord struct {
	Platform      string
	PostType      string
	ScheduledTime time.Time
	ContentLength int
	Hashtags      []string
	Theme         string
}

// PerformanceSnapshot is the derived, per-request aggregation of a bounded
// window of a user's post history. It is never persisted.
type PerformanceSnapshot struct {
	SampleSize     int
	PlatformCounts map[string]int
	PostTypeCounts map[string]int
	HourCounts     map[int]int
	ThemeCounts    map[string]int
	AvgLength      float64
	MinLength      int
	MaxLength      int
	AvgHashtags    float64
}
