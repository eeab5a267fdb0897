package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
	"blueprint/internal/domain/repositories"
)

// userDoc is the stored shape of a user.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"hashed_password"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// UserRepository implements repositories.UserRepository on MongoDB.
type UserRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewUserRepository creates a user repository.
func NewUserRepository(cfg *RepositoryConfig) *UserRepository {
	return &UserRepository{
		coll:   cfg.DB.Collection(cfg.Collections.Users),
		logger: cfg.Logger,
	}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// EnsureIndexes creates the unique username index. Called once at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// Create inserts a new user and fills in the store-assigned ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDoc{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	user.ID = oid.Hex()

	return nil
}

// GetByUsername looks a user up by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return doc.toModel(), nil
}

// GetByID looks a user up by their hex ObjectID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return doc.toModel(), nil
}
