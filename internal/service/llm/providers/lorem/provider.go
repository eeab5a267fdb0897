// Package lorem is a mock completion provider that generates lorem ipsum
// text. Used for development and tests without requiring real API keys.
package lorem

import (
	"context"

	loremgen "github.com/bozaro/golorem"

	"blueprint/internal/domain/models"
)

// Provider generates lorem ipsum completions.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a lorem provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// Complete returns a few paragraphs of lorem ipsum, honoring cancellation so
// it behaves like the blocking external call it stands in for.
func (p *Provider) Complete(ctx context.Context, messages []models.Message) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	return p.generator.Paragraph(2, 4), nil
}
