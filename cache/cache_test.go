package cache

import (
	"context"
	"testing"
)

func TestNilClientIsSafe(t *testing.T) {
	var rc *RedisClient
	ctx := context.Background()

	if err := rc.Set(ctx, "k", "v", PredictionTTL); err != nil {
		t.Fatalf("nil client Set returned error: %v", err)
	}
	var out string
	if rc.Get(ctx, "k", &out) {
		t.Fatal("nil client Get reported a hit")
	}
	if err := rc.Delete(ctx, "k"); err != nil {
		t.Fatalf("nil client Delete returned error: %v", err)
	}
}

func TestNewRedisClientNoHost(t *testing.T) {
	if rc := NewRedisClient("", "6379", ""); rc != nil {
		t.Fatal("expected nil client when host is unset")
	}
}

func TestPredictionKey(t *testing.T) {
	if got := PredictionKey("SKU-1"); got != "predict:SKU-1" {
		t.Fatalf("unexpected key %q", got)
	}
}
