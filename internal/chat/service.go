package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/jngsolar/storefront-backend/pkg/errors"
)

const emptyMessageReply = "Please share how we can help."

// Service answers storefront chat messages.
type Service interface {
	Reply(ctx context.Context, message string) (string, error)
}

// NewScriptedService builds the default responder: a deterministic
// templated reply that quotes the visitor's message.
func NewScriptedService() Service {
	return &scriptedService{}
}

type scriptedService struct{}

func (s *scriptedService) Reply(_ context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return emptyMessageReply, nil
	}
	return fmt.Sprintf("Thanks for your message: %q. A JNG specialist will reply shortly.", trimmed), nil
}

type completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type assistantService struct {
	client       completer
	systemPrompt string
}

// NewAssistantService builds the model-backed responder used when an
// API key is configured. Empty messages are still answered locally,
// without an upstream call.
func NewAssistantService(client completer, systemPrompt string) (Service, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "chat: completion client is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, errors.New(errors.CodeInternal, "chat: system prompt is required")
	}
	return &assistantService{client: client, systemPrompt: systemPrompt}, nil
}

func (s *assistantService) Reply(ctx context.Context, message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return emptyMessageReply, nil
	}
	return s.client.Complete(ctx, s.systemPrompt, trimmed)
}
