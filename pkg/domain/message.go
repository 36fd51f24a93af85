package domain

import "time"

// Message is a normalized chat message delivered by the platform webhook.
// It is never mutated after creation and never persisted by the engine.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	ChannelID string    `json:"channel_id"`
	Timestamp time.Time `json:"timestamp"`
	ThreadTS  string    `json:"thread_ts,omitempty"`
}

// UserProfile identifies the user a message is triaged for
type UserProfile struct {
	UserID      string `json:"id"`
	TeamID      string `json:"team_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"` // free-form "what I want to hear about" text
}

// ChannelInfo is channel metadata passed to the classifier for context
type ChannelInfo struct {
	Name        string `json:"name"`
	IsPrivate   bool   `json:"is_private"`
	MemberCount int    `json:"member_count,omitempty"`
}
