package domain

import "time"

// Strategy is the scheduling input for one weekly planning cycle.
type Strategy struct {
	Platforms        []string
	Themes           []string
	ContentMix       map[string]int
	PostsPerPlatform int
	CampaignName     string
}

// EntryStatus tracks a calendar entry through publication.
type EntryStatus string

const (
	EntryStatusScheduled EntryStatus = "scheduled"
	EntryStatusPublished EntryStatus = "published"
	EntryStatusFailed    EntryStatus = "failed"
)

// ContentTypeImageText is the canonical single image/text post variant. The
// engine emits only this variant today; carousels and stories are edited in
// by downstream consumers.
const ContentTypeImageText = "image_text"

// CalendarEntry is one scheduled post slot. Entries are immutable once the
// engine has produced them; later edits belong to the persistence layer.
type CalendarEntry struct {
	ID          string
	UserID      string
	Date        time.Time
	TimeSlot    string
	Platform    string
	Topic       string
	PostType    string
	ContentType string
	Status      EntryStatus
	Campaign    string
	CreatedAt   time.Time
}

// Profile carries the per-user scheduling preferences supplied by the
// profile collaborator.
type Profile struct {
	UserID           string
	Platforms        []string
	Themes           []string
	PostsPerWeek     int
	Plan             PlanTier
	BusinessCategory string
}
