package handlers

import (
	"net/http"

	"server/internal/insights"
)

// InsightsPatterns exposes the performance pattern snapshot. The snapshot is
// recomputed per request and an empty history yields a neutral result, so
// this endpoint never fails on missing data.
func (a *App) InsightsPatterns(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	history := a.recentHistory(r.Context(), userID)
	snap := insights.Analyze(history)

	a.json(w, http.StatusOK, map[string]any{
		"sample_size":     snap.SampleSize,
		"platforms":       snap.PlatformCounts,
		"post_types":      snap.PostTypeCounts,
		"posting_hours":   snap.HourCounts,
		"themes":          snap.ThemeCounts,
		"avg_length":      snap.AvgLength,
		"min_length":      snap.MinLength,
		"max_length":      snap.MaxLength,
		"avg_hashtags":    snap.AvgHashtags,
		"top_platforms":   insights.TopPlatforms(history, 3),
		"top_hours":       insights.TopHours(snap, 3),
		"top_themes":      insights.TopThemes(history, 3),
	})
}
