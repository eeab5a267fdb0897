// Command seed creates the bootstrap admin user. Safe to run repeatedly;
// an existing user is left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"blueprint/internal/auth"
	"blueprint/internal/config"
	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
	mongorepo "blueprint/internal/repository/mongo"
)

func main() {
	username := flag.String("username", "admin", "username of the bootstrap user")
	password := flag.String("password", "admin", "password of the bootstrap user")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	// Default credentials are for local development only.
	if cfg.Environment == "prod" && *password == "admin" {
		log.Fatal("refusing to seed the default password in production, pass -password")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	db, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(ctx)

	repoConfig := &mongorepo.RepositoryConfig{
		DB:          db,
		Collections: mongorepo.NewCollectionNames(cfg.CollectionPrefix),
		Logger:      logger,
	}
	users := mongorepo.NewUserRepository(repoConfig)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	if existing, err := users.GetByUsername(ctx, *username); err == nil {
		log.Printf("user %q already exists (id %s), nothing to do", existing.Username, existing.ID)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("Failed to look up user: %v", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     *username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("user %q created (id %s)", user.Username, user.ID)
}
