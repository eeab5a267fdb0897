// Package repositories defines the persistence interfaces the service layer
// depends on. Implementations live under internal/repository.
package repositories

import (
	"context"

	"blueprint/internal/domain/models"
)

// UserRepository manages user accounts. Usernames are unique.
type UserRepository interface {
	// Create inserts a new user and fills in the store-assigned ID.
	// Returns domain.ErrConflict if the username is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ConversationRepository owns the canonical conversation documents. The
// implementation also maintains the session-keyed history projection on every
// append; see AppendMessage.
type ConversationRepository interface {
	// Create persists a new empty conversation for ownerID with the fixed
	// system instructions prepended as the first message.
	Create(ctx context.Context, ownerID string) (*models.Conversation, error)

	// Get loads a conversation by ID without an ownership filter; callers
	// must enforce ownership so that "absent" and "not owned" stay
	// distinguishable. Returns domain.ErrNotFound for unknown or malformed IDs.
	Get(ctx context.Context, id string) (*models.Conversation, error)

	// ListByOwner returns all conversations owned by ownerID, unordered.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Conversation, error)

	// AppendMessage appends msg to the canonical message sequence and bumps
	// last_updated, then appends to the history projection keyed by
	// (ownerID, conversationID). The two writes are sequential, canonical
	// first; a projection failure fails the call without rolling back the
	// canonical write. Rebuild on HistoryRepository repairs the projection.
	AppendMessage(ctx context.Context, ownerID, conversationID string, msg models.Message) error
}

// HistoryRepository is the session-keyed projection of message history kept
// alongside the canonical conversation record. Canonical is source of truth.
type HistoryRepository interface {
	// Append adds one message to the session's history.
	Append(ctx context.Context, ownerID, conversationID string, msg models.Message) error

	// Messages returns the session's history in append order.
	Messages(ctx context.Context, ownerID, conversationID string) ([]models.Message, error)

	// Rebuild replaces the session's history with msgs, in order. Used to
	// reconcile the projection from canonical state after a partial write.
	Rebuild(ctx context.Context, ownerID, conversationID string, msgs []models.Message) error
}
