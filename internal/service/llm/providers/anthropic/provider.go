// Package anthropic implements the completion provider on the Anthropic API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"blueprint/internal/domain/models"
)

const defaultMaxTokens = 4096

// Provider generates completions with Claude models.
type Provider struct {
	client *anthropic.Client
	model  string
}

// NewProvider creates an Anthropic provider with the given API key and model.
func NewProvider(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// Complete invokes the model with the full conversation. System messages map
// to the system parameter; human and ai turns become user/assistant messages.
func (p *Provider) Complete(ctx context.Context, messages []models.Message) (string, error) {
	system, apiMessages, err := convertMessages(messages)
	if err != nil {
		return "", fmt.Errorf("convert messages: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		Messages:  apiMessages,
		MaxTokens: defaultMaxTokens,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	return extractText(message), nil
}

// convertMessages splits the sequence into the system prompt and the
// alternating user/assistant turns the API expects.
func convertMessages(messages []models.Message) (string, []anthropic.MessageParam, error) {
	var system strings.Builder
	result := make([]anthropic.MessageParam, 0, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(msg.Content)
		case models.RoleHuman:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case models.RoleAI:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return "", nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}
	}

	return system.String(), result, nil
}

// extractText concatenates the text blocks of a response.
func extractText(message *anthropic.Message) string {
	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
