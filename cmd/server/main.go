package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"blueprint/internal/auth"
	"blueprint/internal/config"
	"blueprint/internal/handler"
	"blueprint/internal/middleware"
	mongorepo "blueprint/internal/repository/mongo"
	authSvc "blueprint/internal/service/auth"
	"blueprint/internal/service/chat"
	"blueprint/internal/service/llm"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"collection_prefix", cfg.CollectionPrefix,
	)

	// Token service (secret presence already enforced by config validation)
	tokens, err := auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// Connect to MongoDB
	ctx := context.Background()
	db, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(ctx)

	logger.Info("database connected", "database", cfg.MongoDatabase)

	// Create repositories
	repoConfig := &mongorepo.RepositoryConfig{
		DB:          db,
		Collections: mongorepo.NewCollectionNames(cfg.CollectionPrefix),
		Logger:      logger,
	}
	userRepo := mongorepo.NewUserRepository(repoConfig)
	historyRepo := mongorepo.NewHistoryRepository(repoConfig)
	convRepo := mongorepo.NewConversationRepository(repoConfig, historyRepo)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Setup completion provider
	provider, err := llm.Setup(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup completion provider: %v", err)
	}

	// Create services
	authService := authSvc.NewService(userRepo, tokens, logger)
	chatService := chat.NewService(convRepo, provider, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("GET /api/chats", chatHandler.ListChats)
	mux.HandleFunc("GET /api/chats/{id}/messages", chatHandler.GetChatMessages)
	mux.HandleFunc("POST /api/chat", chatHandler.SendTurn)
	mux.HandleFunc("POST /api/chats/new", chatHandler.CreateChat)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Auth → Routes
	h = middleware.Auth(tokens, middleware.DefaultExcludedPaths)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
