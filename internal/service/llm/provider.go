// Package llm defines the model-completion collaborator interface and its
// provider implementations.
package llm

import (
	"context"

	"blueprint/internal/domain/models"
)

// Provider generates a completion for an ordered message sequence. The call
// blocks until the provider responds and honors ctx cancellation; it applies
// no internal timeout and performs no retries - callers impose deadlines and
// handle failure.
type Provider interface {
	// Name returns the provider name for logging and setup.
	Name() string

	// Complete invokes the model with the full message sequence (system
	// instructions first) and returns the generated text.
	Complete(ctx context.Context, messages []models.Message) (string, error)
}
