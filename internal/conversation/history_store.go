package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultHistoryTTL = 24 * time.Hour

// HistoryStore caches conversation turns in Redis so reconnecting clients can
// resume without replaying their local history. The client copy stays
// authoritative; this cache is best effort.
type HistoryStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
}

// NewHistoryStore returns a Redis-backed history cache. A nil client yields a
// nil store, and all methods on a nil store are no-ops.
func NewHistoryStore(redisClient *redis.Client, ttl time.Duration) *HistoryStore {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	return &HistoryStore{
		redis:  redisClient,
		tracer: otel.Tracer("salesfunnel.internal.conversation.history"),
		ttl:    ttl,
	}
}

// Save persists the full turn list for a conversation.
func (s *HistoryStore) Save(ctx context.Context, conversationID string, turns []Turn) error {
	if s == nil || s.redis == nil || conversationID == "" {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "conversation.save_history")
	defer span.End()

	data, err := json.Marshal(turns)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, historyKey(conversationID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist history: %w", err)
	}
	return nil
}

// Load returns the cached turns, or nil when the conversation is unknown.
func (s *HistoryStore) Load(ctx context.Context, conversationID string) ([]Turn, error) {
	if s == nil || s.redis == nil || conversationID == "" {
		return nil, nil
	}
	ctx, span := s.tracer.Start(ctx, "conversation.load_history")
	defer span.End()

	data, err := s.redis.Get(ctx, historyKey(conversationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to load history: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to decode history: %w", err)
	}
	return turns, nil
}

func historyKey(id string) string {
	return fmt.Sprintf("conversation:%s", id)
}
