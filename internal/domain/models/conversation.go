package models

import "time"

// Conversation is a durable, ordered message sequence owned by exactly one
// user. Once any message exists, the first one is always the system message
// injected at creation time; the owner never changes.
type Conversation struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user_id"`
	LastUpdated time.Time `json:"last_updated"`
	Messages    []Message `json:"messages"`
}

// ConversationSummary is the read-time projection used by list endpoints.
// The title is derived, not stored.
type ConversationSummary struct {
	ID           string    `json:"id"`
	LastUpdated  time.Time `json:"last_updated"`
	MessageCount int       `json:"message_count"`
	Title        string    `json:"title"`
}
