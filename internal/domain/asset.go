package domain

import "time"

// Asset is a generated artifact stored on behalf of a user.
type Asset struct {
	ID         string
	UserID     string
	StorageKey string
	MimeType   string
	Bytes      int64
	CreatedAt  time.Time
}
