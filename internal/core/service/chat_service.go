package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
	"github.com/nyaaysathi/legal-api/internal/pkg/metrics"
)

const (
	chatHistoryLimit   = 50
	guestSessionPrefix = "guest_"
)

// DefaultSystemPrompt is used when the caller does not supply one. Clients
// render the reply as a list of typed cards.
const DefaultSystemPrompt = `You are a legal assistant for NyaaySathi, an Indian legal services platform.

Respond only with JSON of the form:
{"cards": [{"type": "info", "title": "...", "content": "..."}]}

Card types: greeting, question, info, advice, action, warning.
Use 2 to 4 cards, keep each card to 2 or 3 short lines, use simple language,
and reply in Hindi-English if the user writes in Hindi. Output no text outside the JSON.`

// ChatService relays messages to the language model and logs exchanges for
// signed-in users.
type ChatService struct {
	completer ports.ChatCompleter
	history   ports.ChatHistoryRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewChatService(completer ports.ChatCompleter, history ports.ChatHistoryRepository, log zerolog.Logger) *ChatService {
	return &ChatService{
		completer: completer,
		history:   history,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Send uses the user id as the session id.
func (s *ChatService) Send(ctx context.Context, user *domain.Identity, message, systemPrompt string) (*ports.ChatReply, error) {
	response, err := s.complete(ctx, "user", user.ID, message, systemPrompt)
	if err != nil {
		return nil, err
	}

	exchange := &domain.ChatExchange{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		SessionID: user.ID,
		Message:   message,
		Response:  response,
		Timestamp: s.now(),
	}
	if err := s.history.Insert(ctx, exchange); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to store chat exchange")
	}
	return &ports.ChatReply{Response: response, SessionID: user.ID}, nil
}

// SendGuest does not store history.
func (s *ChatService) SendGuest(ctx context.Context, sessionID, message, systemPrompt string) (*ports.ChatReply, error) {
	if sessionID == "" {
		sessionID = guestSessionPrefix + uuid.NewString()
	}
	response, err := s.complete(ctx, "guest", sessionID, message, systemPrompt)
	if err != nil {
		return nil, err
	}
	return &ports.ChatReply{Response: response, SessionID: sessionID}, nil
}

func (s *ChatService) History(ctx context.Context, user *domain.Identity) ([]*domain.ChatExchange, error) {
	exchanges, err := s.history.Recent(ctx, user.ID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return exchanges, nil
}

func (s *ChatService) complete(ctx context.Context, session, sessionID, message, systemPrompt string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.NewValidationError("message", "is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	start := time.Now()
	response, err := s.completer.Complete(ctx, sessionID, systemPrompt, message)
	metrics.ChatLatency.WithLabelValues(session).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues(session, "error").Inc()
		s.log.Error().Err(err).Str("session", session).Msg("chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	metrics.ChatRequestsTotal.WithLabelValues(session, "ok").Inc()
	return response, nil
}
