package domain

import "time"

// Decision is the resolved delivery outcome for one message and one user.
// SendDM and StoreInFeed may both be true (DM and feed) or both false
// (message fully dropped); neither combination is an error.
type Decision struct {
	SendDM                 bool `json:"send_dm"`
	StoreInFeed            bool `json:"store_in_feed"`
	SuppressedByQuietHours bool `json:"suppressed_by_quiet_hours"`
}

// ClassifierSource records which classifier produced the result
type ClassifierSource string

// classifier sources
const (
	ClassifierRemote   ClassifierSource = "remote"
	ClassifierFallback ClassifierSource = "fallback"
)

// Record is the write-once audit entry produced for every processed message,
// whatever the delivery outcome. Records with StoredInFeed set double as the
// user's notification feed entries.
type Record struct {
	ID             int64            `json:"id"`
	MessageID      string           `json:"message_id"`
	UserID         string           `json:"user_id"`
	TeamID         string           `json:"team_id"`
	ChannelID      string           `json:"channel_id"`
	Text           string           `json:"text"` // sanitized message text for feed rendering
	Classification Classification   `json:"classification"`
	Decision       Decision         `json:"decision"`
	Classifier     ClassifierSource `json:"classifier"`
	SentDM         bool             `json:"sent_dm"`
	DMFailed       bool             `json:"dm_failed,omitempty"`
	FeedFailed     bool             `json:"feed_failed,omitempty"`
	ProcessedAt    time.Time        `json:"processed_at"`
}
