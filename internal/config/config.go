package config

import (
	"errors"
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Auth
	JWTSecret string

	// Storage
	MongoURI         string
	MongoDatabase    string
	CollectionPrefix string

	// LLM configuration
	LLMProvider     string
	AnthropicAPIKey string
	DefaultModel    string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		JWTSecret:        getEnv("JWT_SECRET_KEY", ""),
		MongoURI:         getEnv("MONGODB_URI", ""),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "blueprint"),
		CollectionPrefix: getCollectionPrefix(env),
		LLMProvider:      getEnv("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		DefaultModel:     getEnv("DEFAULT_MODEL", "claude-haiku-4-5-20251001"),
	}
}

// Validate enforces the startup preconditions. A missing signing secret or
// database URI is a configuration failure, fatal at startup rather than
// surfaced per request.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI is required")
	}
	return nil
}

// getCollectionPrefix returns the collection prefix based on environment,
// so dev/test/prod can share a cluster without colliding.
func getCollectionPrefix(env string) string {
	if prefix := os.Getenv("COLLECTION_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
