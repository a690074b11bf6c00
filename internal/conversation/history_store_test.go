package conversation

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHistoryStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewHistoryStore(client, time.Hour)
	turns := []Turn{
		{Text: "Hey! Who am I chatting with?", IsUser: false},
		{Text: "I'm Maya", IsUser: true},
	}
	if err := store.Save(context.Background(), "conv-1", turns); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[1].Text != "I'm Maya" || !got[1].IsUser {
		t.Errorf("loaded turns = %+v", got)
	}

	ttl := mr.TTL(historyKey("conv-1"))
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestHistoryStoreUnknownConversation(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewHistoryStore(client, time.Hour)
	got, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil history, got %+v", got)
	}
}

func TestHistoryStoreNilIsNoop(t *testing.T) {
	var store *HistoryStore
	if err := store.Save(context.Background(), "conv-1", nil); err != nil {
		t.Errorf("nil store save errored: %v", err)
	}
	if _, err := store.Load(context.Background(), "conv-1"); err != nil {
		t.Errorf("nil store load errored: %v", err)
	}
}
