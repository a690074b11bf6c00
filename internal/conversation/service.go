package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arielgp/salesfunnel-ai/internal/funnel"
	"github.com/arielgp/salesfunnel-ai/internal/leads"
	"github.com/arielgp/salesfunnel-ai/internal/observability/metrics"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

var serviceTracer = otel.Tracer("salesfunnel.internal.conversation")

const persistTimeout = 5 * time.Second

// Service runs conversation turns: it advances the funnel state, prompts the
// language model with the stage directive, and segments the reply.
type Service struct {
	engine      *funnel.Engine
	llm         LLMClient
	leads       leads.Repository
	history     *HistoryStore
	transcripts *TranscriptStore
	logger      *logging.Logger
	metrics     *metrics.FunnelMetrics
}

// NewService wires the turn pipeline. Engine and llm are required; the
// persistence stores and leads repository may be nil, which disables the
// corresponding side effects.
func NewService(
	engine *funnel.Engine,
	llm LLMClient,
	leadRepo leads.Repository,
	history *HistoryStore,
	transcripts *TranscriptStore,
	logger *logging.Logger,
	m *metrics.FunnelMetrics,
) *Service {
	if engine == nil {
		panic("conversation: funnel engine cannot be nil")
	}
	if llm == nil {
		panic("conversation: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		engine:      engine,
		llm:         llm,
		leads:       leadRepo,
		history:     history,
		transcripts: transcripts,
		logger:      logger,
		metrics:     m,
	}
}

// Apology returns the locale's upstream-failure message.
func (s *Service) Apology() string {
	return s.engine.Apology()
}

// StartConversation produces the opening greeting on a fresh lead state. The
// state is not advanced; the visitor's first reply does that.
func (s *Service) StartConversation(ctx context.Context, req StartRequest) (*TurnResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "conversation.start")
	defer span.End()

	state := funnel.NewLeadState()
	state.LeadID = req.LeadID
	if state.LeadID == "" {
		state.LeadID = uuid.NewString()
	}
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = fmt.Sprintf("conv_%s_%d", state.LeadID, time.Now().UnixNano())
	}
	span.SetAttributes(
		attribute.String("salesfunnel.conversation_id", conversationID),
		attribute.String("salesfunnel.locale", string(s.engine.Locale())),
	)

	started := time.Now()
	reply, err := s.llm.Complete(ctx, []ChatMessage{
		{Role: RoleSystem, Content: s.engine.BuildInstructions(state)},
		{Role: RoleUser, Content: "Hi"},
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveUpstreamFailure()
		s.metrics.ObserveTurn(string(s.engine.Locale()), "upstream_error", time.Since(started).Seconds())
		return nil, err
	}

	segments := funnel.Segment(reply)
	now := time.Now().UTC()
	resp := &TurnResponse{
		ConversationID: conversationID,
		Reply:          Reply(segments),
		LeadState:      state,
		Timestamp:      now,
	}

	s.metrics.ObserveTurn(string(s.engine.Locale()), "ok", time.Since(started).Seconds())
	s.persistAsync(conversationID, state, nil, "", segments)
	return resp, nil
}

// ProcessTurn runs one visitor message through the funnel and the model.
// The returned lead state supersedes the one in the request; on error the
// request state remains authoritative.
func (s *Service) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "conversation.turn")
	defer span.End()

	prev := req.LeadState
	if prev.Stage == "" {
		prev = funnel.NewLeadState()
	}
	span.SetAttributes(
		attribute.String("salesfunnel.conversation_id", req.ConversationID),
		attribute.String("salesfunnel.stage", string(prev.Stage)),
	)

	started := time.Now()
	next, err := s.engine.Advance(prev, req.Message)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveTurn(string(s.engine.Locale()), "invalid_state", time.Since(started).Seconds())
		return nil, err
	}
	if next.LeadID == "" {
		next.LeadID = uuid.NewString()
	}

	messages := make([]ChatMessage, 0, len(req.ConversationHistory)+2)
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: s.engine.BuildInstructions(next)})
	for _, turn := range req.ConversationHistory {
		role := RoleAssistant
		if turn.IsUser {
			role = RoleUser
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, ChatMessage{Role: RoleUser, Content: req.Message})

	reply, err := s.llm.Complete(ctx, messages)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveUpstreamFailure()
		s.metrics.ObserveTurn(string(s.engine.Locale()), "upstream_error", time.Since(started).Seconds())
		return nil, err
	}

	if next.Stage != prev.Stage {
		s.metrics.ObserveTransition(string(prev.Stage), string(next.Stage))
	}
	s.metrics.ObserveTurn(string(s.engine.Locale()), "ok", time.Since(started).Seconds())

	segments := funnel.Segment(reply)
	resp := &TurnResponse{
		ConversationID: req.ConversationID,
		Reply:          Reply(segments),
		LeadState:      next,
		Timestamp:      time.Now().UTC(),
	}

	s.persistAsync(req.ConversationID, next, req.ConversationHistory, req.Message, segments)
	return resp, nil
}

// persistAsync fans the turn out to the lead repository, the Redis history
// cache, and the SQL transcript mirror. Failures are logged, never surfaced.
func (s *Service) persistAsync(conversationID string, state funnel.LeadState, history []Turn, userMessage string, segments []string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		now := time.Now().UTC()
		turns := make([]Turn, 0, len(history)+1+len(segments))
		turns = append(turns, history...)
		if userMessage != "" {
			turns = append(turns, Turn{Text: userMessage, IsUser: true, Timestamp: now})
		}
		for _, segment := range segments {
			turns = append(turns, Turn{Text: segment, Timestamp: now})
		}

		if err := s.history.Save(ctx, conversationID, turns); err != nil {
			s.logger.Error("failed to cache conversation history", "conversation_id", conversationID, "error", err)
		}

		locale := string(s.engine.Locale())
		if userMessage != "" {
			if err := s.transcripts.AppendMessage(ctx, conversationID, state.Phone, locale, RoleUser, userMessage); err != nil {
				s.logger.Error("failed to persist user message", "conversation_id", conversationID, "error", err)
			}
		}
		for _, segment := range segments {
			if err := s.transcripts.AppendMessage(ctx, conversationID, state.Phone, locale, RoleAssistant, segment); err != nil {
				s.logger.Error("failed to persist assistant message", "conversation_id", conversationID, "error", err)
			}
		}

		if s.leads != nil && state.LeadID != "" {
			lead := &leads.Lead{
				ID:               state.LeadID,
				Stage:            string(state.Stage),
				Name:             state.Name,
				Industry:         state.Industry,
				Email:            state.Email,
				Phone:            state.Phone,
				City:             state.City,
				AppointmentLabel: state.AppointmentLabel,
				Locale:           locale,
			}
			if err := s.leads.Upsert(ctx, lead); err != nil {
				s.logger.Error("failed to upsert lead", "lead_id", state.LeadID, "error", err)
			}
		}
	}()
}
