package summaries

import "time"

// Summary is a stored document summary owned by a user.
type Summary struct {
	ID         string
	UserID     string
	FileName   string
	StorageKey string
	Summary    string
	CreatedAt  time.Time
}
