package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/llm"
)

const (
	chatHistoryTurns  = 10
	recentSymptomDays = 7
)

// ChatStore persists conversation history and model usage.
type ChatStore interface {
	ListChatMessages(ctx context.Context, userID string) ([]domain.ChatMessage, error)
	RecentChatMessages(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error)
	CreateChatMessage(ctx context.Context, m domain.ChatMessage) error
	IncrementChatUsage(ctx context.Context, userID, day string) (int, error)
	SymptomsSince(ctx context.Context, userID string, from time.Time) ([]domain.Symptom, error)
}

// ChatReply is the companion's answer together with the phase it was given in.
type ChatReply struct {
	Message string
	Phase   cycle.Phase
}

// ChatService runs the wellness companion conversation.
type ChatService struct {
	store      ChatStore
	insights   *InsightsService
	model      llm.Client
	dailyLimit int
	logger     *slog.Logger
	nowFn      func() time.Time
}

// NewChatService constructs a ChatService. model may be nil, in which case
// every reply is the phase fallback. dailyLimit <= 0 disables the cap.
func NewChatService(store ChatStore, insights *InsightsService, model llm.Client, dailyLimit int, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		store:      store,
		insights:   insights,
		model:      model,
		dailyLimit: dailyLimit,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *ChatService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// History returns the full conversation, oldest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	return s.store.ListChatMessages(ctx, userID)
}

// Greeting returns the opening line for the user's current phase.
func (s *ChatService) Greeting(ctx context.Context, userID string) (ChatReply, error) {
	insights, err := s.insights.ForUser(ctx, userID)
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Message: GreetingFor(insights.Phase), Phase: insights.Phase}, nil
}

// Send stores the user's message, asks the model for a reply (or falls back
// to phase advice) and stores the reply.
func (s *ChatService) Send(ctx context.Context, userID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, invalidf("content is required")
	}
	if len([]rune(message)) > maxChatMessageLength {
		return ChatReply{}, invalidf("content must be at most %d characters", maxChatMessageLength)
	}

	insights, err := s.insights.ForUser(ctx, userID)
	if err != nil {
		return ChatReply{}, err
	}
	phase := insights.Phase

	history, err := s.store.RecentChatMessages(ctx, userID, chatHistoryTurns)
	if err != nil {
		return ChatReply{}, err
	}

	now := s.nowFn().UTC()
	if err := s.store.CreateChatMessage(ctx, domain.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		Role:       domain.RoleUser,
		Content:    message,
		CyclePhase: string(phase),
		CreatedAt:  now,
	}); err != nil {
		return ChatReply{}, err
	}

	reply := s.generate(ctx, userID, message, insights, history)

	if err := s.store.CreateChatMessage(ctx, domain.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		Role:       domain.RoleAssistant,
		Content:    reply,
		CyclePhase: string(phase),
		CreatedAt:  now,
	}); err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Message: reply, Phase: phase}, nil
}

func (s *ChatService) generate(ctx context.Context, userID, message string, insights cycle.Insights, history []domain.ChatMessage) string {
	fallback := FallbackReply(insights.Phase)
	if s.model == nil {
		return fallback
	}

	if s.dailyLimit > 0 {
		used, err := s.store.IncrementChatUsage(ctx, userID, cycle.FormatDate(s.insights.Today()))
		if err != nil {
			s.logger.Warn("chat usage tracking failed", "user_id", userID, "error", err)
			return fallback
		}
		if used > s.dailyLimit {
			s.logger.Info("chat daily limit reached", "user_id", userID, "limit", s.dailyLimit)
			return fallback
		}
	}

	symptoms, err := s.recentSymptoms(ctx, userID)
	if err != nil {
		s.logger.Warn("recent symptoms lookup failed", "user_id", userID, "error", err)
	}

	start := s.nowFn()
	reply, err := s.model.Generate(ctx, llm.Request{
		SystemInstruction: systemInstruction(insights, symptoms),
		History:           chatTurns(history),
		Message:           message,
	})
	if err != nil {
		s.logger.Error("chat generation failed", "user_id", userID, "error", err)
		return fallback
	}
	s.logger.Debug("chat reply generated", "user_id", userID, "chars", len(reply), "elapsed", s.nowFn().Sub(start))
	return reply
}

// recentSymptoms returns distinct symptom types logged in the last week.
func (s *ChatService) recentSymptoms(ctx context.Context, userID string) ([]string, error) {
	from := cycle.AddDays(s.insights.Today(), -recentSymptomDays)
	logs, err := s.store.SymptomsSince(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(logs))
	var out []string
	for _, l := range logs {
		if _, ok := seen[l.SymptomType]; ok {
			continue
		}
		seen[l.SymptomType] = struct{}{}
		out = append(out, l.SymptomType)
	}
	return out, nil
}

func chatTurns(msgs []domain.ChatMessage) []llm.Turn {
	turns := make([]llm.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Role == domain.RoleAssistant {
			role = llm.RoleModel
		}
		turns = append(turns, llm.Turn{Role: role, Text: m.Content})
	}
	return turns
}
