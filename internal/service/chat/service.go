// Package chat implements the per-turn conversation workflow.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
	"blueprint/internal/domain/repositories"
	"blueprint/internal/service/llm"
)

const (
	// maxMessageLength bounds a single user utterance.
	maxMessageLength = 4000

	// titleLimit bounds derived conversation titles.
	titleLimit = 50

	// defaultTitle is used when a conversation has no human message yet.
	defaultTitle = "New Chat"
)

// fallbackReply substitutes for the model's answer when the completion
// collaborator fails. The turn still completes and the fallback is persisted
// as the ai turn so the conversation stays well-formed.
const fallbackReply = "The model is currently unavailable (quota or rate limit reached). Please try again in a few minutes."

// SendRequest is one chat turn from a user. An empty ConversationID starts a
// new conversation.
type SendRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// SendResult is the outcome of a chat turn.
type SendResult struct {
	ConversationID string `json:"conversation_id"`
	UserMessage    string `json:"user_message"`
	Reply          string `json:"llm_response"`

	// Created reports whether this turn minted a new conversation.
	Created bool `json:"-"`
}

// ListResult wraps conversation summaries for the list endpoint.
type ListResult struct {
	UserID    string                       `json:"user_id"`
	ChatCount int                          `json:"chat_count"`
	Chats     []models.ConversationSummary `json:"chats"`
}

// MessagesResult is the ordered message sequence of one conversation.
type MessagesResult struct {
	ConversationID string           `json:"chat_id"`
	Messages       []models.Message `json:"messages"`
}

// Service orchestrates chat turns: it resolves the target conversation,
// appends the user turn, invokes the completion provider, and appends the
// model (or fallback) turn. It holds no conversation state across requests.
type Service struct {
	conversations repositories.ConversationRepository
	provider      llm.Provider
	logger        *slog.Logger
}

// NewService creates the chat orchestrator.
func NewService(conversations repositories.ConversationRepository, provider llm.Provider, logger *slog.Logger) *Service {
	return &Service{
		conversations: conversations,
		provider:      provider,
		logger:        logger,
	}
}

// Send runs one chat turn for userID. When the request names a conversation it
// is loaded and ownership enforced (not-found and not-owned stay distinct);
// otherwise a new conversation is created. A provider failure is recovered
// into the fallback reply rather than aborting the turn.
func (s *Service) Send(ctx context.Context, userID string, req *SendRequest) (*SendResult, error) {
	if err := s.validateSendRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Resolve target
	var conversationID string
	created := false
	if req.ConversationID != "" {
		conv, err := s.loadOwned(ctx, userID, req.ConversationID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	} else {
		conv, err := s.conversations.Create(ctx, userID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
		created = true
	}

	// Append user turn
	if err := s.conversations.AppendMessage(ctx, userID, conversationID, models.HumanMessage(req.Message)); err != nil {
		return nil, err
	}

	// Reload so the model sees the system instructions plus full history,
	// including anything appended by a concurrent request.
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	reply, err := s.provider.Complete(ctx, conv.Messages)
	if err != nil {
		s.logger.Warn("completion failed, substituting fallback reply",
			"conversation_id", conversationID,
			"provider", s.provider.Name(),
			"error", err,
		)
		reply = fallbackReply
	}

	// Append model (or fallback) turn
	if err := s.conversations.AppendMessage(ctx, userID, conversationID, models.AIMessage(reply)); err != nil {
		return nil, err
	}

	return &SendResult{
		ConversationID: conversationID,
		UserMessage:    req.Message,
		Reply:          reply,
		Created:        created,
	}, nil
}

// Create starts a new empty conversation (system instructions only).
func (s *Service) Create(ctx context.Context, userID string) (*models.Conversation, error) {
	conv, err := s.conversations.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// List returns the caller's conversation summaries, most recently updated
// first. Titles are derived at read time from the first human message.
func (s *Service) List(ctx context.Context, userID string) (*ListResult, error) {
	conversations, err := s.conversations.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]
		summaries = append(summaries, models.ConversationSummary{
			ID:           conv.ID,
			LastUpdated:  conv.LastUpdated,
			MessageCount: len(conv.Messages),
			Title:        deriveTitle(conv),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})

	return &ListResult{
		UserID:    userID,
		ChatCount: len(summaries),
		Chats:     summaries,
	}, nil
}

// Messages returns the ordered message sequence of an owned conversation.
func (s *Service) Messages(ctx context.Context, userID, conversationID string) (*MessagesResult, error) {
	conv, err := s.loadOwned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	return &MessagesResult{
		ConversationID: conv.ID,
		Messages:       conv.Messages,
	}, nil
}

// loadOwned loads a conversation and enforces ownership. Absence maps to
// ErrNotFound, a wrong owner to ErrForbidden - never conflated, so a caller
// probing random IDs cannot learn which conversations exist from a 403.
func (s *Service) loadOwned(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.OwnerID != userID {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, domain.ErrForbidden)
	}
	return conv, nil
}

// deriveTitle projects a display title from the first human message,
// truncated with an ellipsis marker.
func deriveTitle(conv *models.Conversation) string {
	for _, msg := range conv.Messages {
		if msg.Role != models.RoleHuman {
			continue
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		runes := []rune(content)
		if len(runes) > titleLimit {
			return string(runes[:titleLimit]) + "..."
		}
		return content
	}
	return defaultTitle
}

func (s *Service) validateSendRequest(req *SendRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Message,
			validation.Required,
			validation.Length(1, maxMessageLength),
		),
	)
}
