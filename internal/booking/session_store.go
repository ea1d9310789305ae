package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

// SessionTTL is how long a saved booking session stays loadable. Expiry is
// checked on every Load against the timestamp embedded in the record, never
// by a background timer.
const SessionTTL = 30 * time.Minute

const sessionKeyPrefix = "velt:booking-session:"

// SessionStore bridges a flight selection from the search step to the
// finalize step. One session per scope (browser tab); Save overwrites.
// Load returns (nil, nil) for an absent, expired or unusable session — the
// caller treats that as "restart the search flow".
type SessionStore interface {
	Save(ctx context.Context, scopeID string, session models.BookingSession) error
	Load(ctx context.Context, scopeID string) (*models.BookingSession, error)
	Clear(ctx context.Context, scopeID string) error
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, scopeID string, session models.BookingSession) error {
	session.Timestamp = s.now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	// The pull-based TTL check in Load is authoritative; the server-side
	// expiry only garbage-collects abandoned sessions.
	return s.client.Set(ctx, sessionKeyPrefix+scopeID, data, 2*s.ttl).Err()
}

func (s *RedisSessionStore) Load(ctx context.Context, scopeID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+scopeID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data, s.now(), s.ttl), nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, scopeID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+scopeID).Err()
}

// MemorySessionStore backs tests and Redis-less deployments.
type MemorySessionStore struct {
	mu    sync.RWMutex
	items map[string][]byte
	ttl   time.Duration
	now   func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		items: make(map[string][]byte),
		ttl:   SessionTTL,
		now:   time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, scopeID string, session models.BookingSession) error {
	session.Timestamp = s.now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[scopeID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, scopeID string) (*models.BookingSession, error) {
	s.mu.RLock()
	data, ok := s.items[scopeID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeSession(data, s.now(), s.ttl), nil
}

func (s *MemorySessionStore) Clear(_ context.Context, scopeID string) error {
	s.mu.Lock()
	delete(s.items, scopeID)
	s.mu.Unlock()
	return nil
}

// decodeSession applies the absence rules shared by every store backend: a
// session is absent when it cannot be parsed, is older than the TTL, or has
// no outbound flight. The raw value may still sit in storage; presence there
// does not make a session loadable.
func decodeSession(data []byte, now time.Time, ttl time.Duration) *models.BookingSession {
	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	if now.Sub(session.Timestamp) > ttl {
		return nil
	}
	if session.SelectedOutbound == nil {
		return nil
	}
	return &session
}
