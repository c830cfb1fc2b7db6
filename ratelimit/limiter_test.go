package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestInMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewInMemory(50 * time.Millisecond)
	key := "auth:127.0.0.1"

	first := limiter.Allow(ctx, key, 2)
	if !first.Allowed || first.Count != 1 || first.Remaining != 1 {
		t.Fatalf("unexpected first decision: %+v", first)
	}
	second := limiter.Allow(ctx, key, 2)
	if !second.Allowed || second.Count != 2 || second.Remaining != 0 {
		t.Fatalf("unexpected second decision: %+v", second)
	}
	third := limiter.Allow(ctx, key, 2)
	if third.Allowed || third.Count != 3 || third.Remaining != 0 {
		t.Fatalf("unexpected third decision: %+v", third)
	}
	other := limiter.Allow(ctx, "auth:10.0.0.1", 2)
	if !other.Allowed || other.Count != 1 {
		t.Fatalf("keys must be counted separately, got %+v", other)
	}
	time.Sleep(70 * time.Millisecond)
	reset := limiter.Allow(ctx, key, 2)
	if !reset.Allowed || reset.Count != 1 {
		t.Fatalf("expected counter reset after window, got %+v", reset)
	}
}

func TestInMemoryLimiterLimitFloor(t *testing.T) {
	limiter := NewInMemory(0)
	decision := limiter.Allow(context.Background(), "k", 0)
	if !decision.Allowed || decision.Limit != 1 {
		t.Fatalf("expected fallback limit=1 and allowed decision, got %+v", decision)
	}
	if limiter.window != time.Minute {
		t.Fatalf("expected default window, got %v", limiter.window)
	}
}

func TestRedisLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedis(client, 25*time.Millisecond)
	key := "auth:127.0.0.1"

	first := limiter.Allow(ctx, key, 2)
	if !first.Allowed || first.Count != 1 || first.Remaining != 1 {
		t.Fatalf("unexpected first decision: %+v", first)
	}
	second := limiter.Allow(ctx, key, 2)
	if !second.Allowed || second.Count != 2 || second.Remaining != 0 {
		t.Fatalf("unexpected second decision: %+v", second)
	}
	third := limiter.Allow(ctx, key, 2)
	if third.Allowed || third.Count != 3 {
		t.Fatalf("unexpected third decision: %+v", third)
	}
	if !mr.Exists("rl:" + key) {
		t.Fatal("expected counter key in redis")
	}
	mr.FastForward(30 * time.Millisecond)
	reset := limiter.Allow(ctx, key, 2)
	if !reset.Allowed || reset.Count != 1 {
		t.Fatalf("expected counter reset after window, got %+v", reset)
	}
}

func TestRedisLimiterUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  5 * time.Millisecond,
		ReadTimeout:  5 * time.Millisecond,
		WriteTimeout: 5 * time.Millisecond,
		MaxRetries:   -1,
	})
	limiter := NewRedis(client, time.Second)
	ctx := context.Background()

	first := limiter.Allow(ctx, "auth:u1", 1)
	if !first.Allowed || first.Count != 1 {
		t.Fatalf("expected fallback decision, got %+v", first)
	}
	second := limiter.Allow(ctx, "auth:u1", 1)
	if second.Allowed {
		t.Fatalf("fallback limiter must still enforce the limit, got %+v", second)
	}
}

func TestRedisLimiterWithoutClient(t *testing.T) {
	limiter := NewRedis(nil, time.Second)
	decision := limiter.Allow(context.Background(), "k", 3)
	if !decision.Allowed || decision.Count != 1 || decision.Remaining != 2 {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}
