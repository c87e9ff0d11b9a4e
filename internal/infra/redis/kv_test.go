package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestKVRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewKV(client, 0)

	if _, ok, err := kv.Get(ctx, "quests:catalog"); err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "quests:catalog", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := kv.Get(ctx, "quests:catalog")
	if err != nil || !ok || string(value) != "[]" {
		t.Fatalf("get: ok=%v err=%v value=%q", ok, err, value)
	}

	if err := kv.Delete(ctx, "quests:catalog"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quests:catalog") {
		t.Fatalf("expected key removed")
	}
}

func TestKVAppliesTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewKV(client, time.Minute)

	if err := kv.Set(ctx, "quests:progress:quest-1", []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if mr.TTL("quests:progress:quest-1") != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", mr.TTL("quests:progress:quest-1"))
	}
}
