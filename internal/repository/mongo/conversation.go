package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
	"blueprint/internal/domain/repositories"
)

// conversationDoc is the stored shape of a conversation. Messages are embedded
// in the canonical document so a single $push keeps the sequence sound under
// concurrent appends.
type conversationDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"user_id"`
	LastUpdated time.Time          `bson:"last_updated"`
	Messages    []models.Message   `bson:"messages"`
}

func (d *conversationDoc) toModel() *models.Conversation {
	return &models.Conversation{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		LastUpdated: d.LastUpdated,
		Messages:    d.Messages,
	}
}

// ConversationRepository implements repositories.ConversationRepository on
// MongoDB. It owns the canonical chats collection and write-throughs to the
// session-keyed history projection on every append.
type ConversationRepository struct {
	coll    *mongo.Collection
	history repositories.HistoryRepository
	logger  *slog.Logger
}

// NewConversationRepository creates a conversation repository. history
// receives a copy of every appended message, keyed by owner and conversation.
func NewConversationRepository(cfg *RepositoryConfig, history repositories.HistoryRepository) repositories.ConversationRepository {
	return &ConversationRepository{
		coll:    cfg.DB.Collection(cfg.Collections.Conversations),
		history: history,
		logger:  cfg.Logger,
	}
}

// Create persists a new conversation for ownerID. The fixed system
// instructions are prepended before the first write, so the first message of
// any persisted conversation is always the system message.
func (r *ConversationRepository) Create(ctx context.Context, ownerID string) (*models.Conversation, error) {
	doc := conversationDoc{
		OwnerID:     ownerID,
		LastUpdated: time.Now().UTC(),
		Messages:    []models.Message{models.SystemMessage(systemPrompt)},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	doc.ID = oid

	r.logger.Info("conversation created",
		"id", doc.ID.Hex(),
		"user_id", ownerID,
	)

	return doc.toModel(), nil
}

// Get loads a conversation by its hex ObjectID. A malformed ID is a not-found,
// not a server error.
func (r *ConversationRepository) Get(ctx context.Context, id string) (*models.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	var doc conversationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return doc.toModel(), nil
}

// ListByOwner returns every conversation owned by ownerID. Ordering is left
// to the read-time projection in the service layer.
func (r *ConversationRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Conversation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []conversationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}

	conversations := make([]models.Conversation, 0, len(docs))
	for i := range docs {
		conversations = append(conversations, *docs[i].toModel())
	}

	return conversations, nil
}

// AppendMessage appends msg to the canonical sequence and bumps last_updated,
// then appends to the history projection. The canonical $push is atomic, so
// concurrent appends to the same conversation interleave in unspecified order
// but never corrupt the sequence. The projection write is sequential and not
// transactional with the canonical one: if it fails the call fails, the
// canonical write stays, and HistoryRepository.Rebuild reconciles later.
func (r *ConversationRepository) AppendMessage(ctx context.Context, ownerID, conversationID string, msg models.Message) error {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"last_updated": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}

	if err := r.history.Append(ctx, ownerID, conversationID, msg); err != nil {
		r.logger.Error("history projection append failed, canonical and projection diverged",
			"conversation_id", conversationID,
			"user_id", ownerID,
			"error", err,
		)
		return fmt.Errorf("append history projection: %w", err)
	}

	return nil
}
