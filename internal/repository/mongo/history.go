package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blueprint/internal/domain/models"
	"blueprint/internal/domain/repositories"
)

// historyDoc is one projected message, addressed by a composite session key.
type historyDoc struct {
	SessionID string         `bson:"session_id"`
	Role      models.Role    `bson:"type"`
	Content   string         `bson:"content"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

// HistoryRepository implements repositories.HistoryRepository on MongoDB. It
// keeps a session-keyed copy of message history alongside the canonical
// conversation record; the canonical record is always the source of truth.
type HistoryRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewHistoryRepository creates a history projection repository.
func NewHistoryRepository(cfg *RepositoryConfig) *HistoryRepository {
	return &HistoryRepository{
		coll:   cfg.DB.Collection(cfg.Collections.ChatHistory),
		logger: cfg.Logger,
	}
}

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// sessionKey derives the composite key addressing one conversation's history.
func sessionKey(ownerID, conversationID string) string {
	return fmt.Sprintf("%s_%s", ownerID, conversationID)
}

// Append adds one message to the session's history.
func (r *HistoryRepository) Append(ctx context.Context, ownerID, conversationID string, msg models.Message) error {
	doc := historyDoc{
		SessionID: sessionKey(ownerID, conversationID),
		Role:      msg.Role,
		Content:   msg.Content,
		Metadata:  msg.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert history message: %w", err)
	}

	return nil
}

// Messages returns the session's history in append order.
func (r *HistoryRepository) Messages(ctx context.Context, ownerID, conversationID string) ([]models.Message, error) {
	filter := bson.M{"session_id": sessionKey(ownerID, conversationID)}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []historyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	msgs := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, models.Message{Role: d.Role, Content: d.Content, Metadata: d.Metadata})
	}

	return msgs, nil
}

// Rebuild replaces the session's history with msgs, in order. This is the
// recovery operation for a diverged projection: delete everything under the
// session key, then reinsert from canonical state.
func (r *HistoryRepository) Rebuild(ctx context.Context, ownerID, conversationID string, msgs []models.Message) error {
	key := sessionKey(ownerID, conversationID)

	if _, err := r.coll.DeleteMany(ctx, bson.M{"session_id": key}); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	if len(msgs) == 0 {
		return nil
	}

	docs := make([]any, 0, len(msgs))
	now := time.Now().UTC()
	for _, msg := range msgs {
		docs = append(docs, historyDoc{
			SessionID: key,
			Role:      msg.Role,
			Content:   msg.Content,
			Metadata:  msg.Metadata,
			CreatedAt: now,
		})
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("reinsert history: %w", err)
	}

	r.logger.Info("history projection rebuilt",
		"conversation_id", conversationID,
		"user_id", ownerID,
		"messages", len(msgs),
	)

	return nil
}
