// Package revocation tracks bearer tokens that were logged out before they
// expired.
package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Revoke marks the token id as revoked until the given time.
	Revoke(ctx context.Context, id string, until time.Time) error
	Revoked(ctx context.Context, id string) (bool, error)
}

type Memory struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]time.Time), now: time.Now}
}

func (m *Memory) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, exp := range m.items {
		if !exp.After(now) {
			delete(m.items, k)
		}
	}
	if until.After(now) {
		m.items[id] = until
	}
	return nil
}

func (m *Memory) Revoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.items[id]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.items, id)
		return false, nil
	}
	return true, nil
}

// Redis stores revocations as expiring keys so every server instance sees
// them. Revocations made by this instance are mirrored into memory and still
// answer while redis is unreachable. Any other lookup then returns an error.
type Redis struct {
	Client   *redis.Client
	Prefix   string
	Fallback *Memory
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client, Prefix: "revoked:", Fallback: NewMemory()}
}

func (r *Redis) Revoke(ctx context.Context, id string, until time.Time) error {
	_ = r.Fallback.Revoke(ctx, id, until)
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, r.Prefix+id, "1", ttl).Err()
}

func (r *Redis) Revoked(ctx context.Context, id string) (bool, error) {
	if ok, _ := r.Fallback.Revoked(ctx, id); ok {
		return true, nil
	}
	n, err := r.Client.Exists(ctx, r.Prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return n > 0, nil
}
