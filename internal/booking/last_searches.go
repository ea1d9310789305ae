package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

// MaxLastSearches caps the per-user recent-search history.
const MaxLastSearches = 5

const lastSearchKeyPrefix = "velt:last-searches:"

// How long an untouched history survives before the store reclaims it.
const lastSearchRetention = 90 * 24 * time.Hour

// LastSearchStore keeps a user's recent flight searches, most recent first,
// de-duplicated by origin/destination/dates/adult count.
type LastSearchStore interface {
	Add(ctx context.Context, userID string, search models.LastFlightSearch) error
	List(ctx context.Context, userID string) ([]models.LastFlightSearch, error)
}

// mergeSearch prepends the new entry, drops any older duplicate of the same
// criteria and trims to the cap.
func mergeSearch(existing []models.LastFlightSearch, search models.LastFlightSearch) []models.LastFlightSearch {
	merged := make([]models.LastFlightSearch, 0, len(existing)+1)
	merged = append(merged, search)
	key := search.Key()
	for _, s := range existing {
		if s.Key() == key {
			continue
		}
		merged = append(merged, s)
	}
	if len(merged) > MaxLastSearches {
		merged = merged[:MaxLastSearches]
	}
	return merged
}

type RedisLastSearchStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisLastSearchStore(client *redis.Client) *RedisLastSearchStore {
	return &RedisLastSearchStore{client: client, now: time.Now}
}

func (s *RedisLastSearchStore) Add(ctx context.Context, userID string, search models.LastFlightSearch) error {
	if search.CreatedAt.IsZero() {
		search.CreatedAt = s.now()
	}
	existing, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(mergeSearch(existing, search))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastSearchKeyPrefix+userID, data, lastSearchRetention).Err()
}

func (s *RedisLastSearchStore) List(ctx context.Context, userID string) ([]models.LastFlightSearch, error) {
	data, err := s.client.Get(ctx, lastSearchKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return []models.LastFlightSearch{}, nil
	}
	if err != nil {
		return nil, err
	}
	var searches []models.LastFlightSearch
	if err := json.Unmarshal(data, &searches); err != nil {
		// A corrupt history is not worth failing a search over.
		return []models.LastFlightSearch{}, nil
	}
	if len(searches) > MaxLastSearches {
		searches = searches[:MaxLastSearches]
	}
	return searches, nil
}

type MemoryLastSearchStore struct {
	mu    sync.RWMutex
	items map[string][]models.LastFlightSearch
	now   func() time.Time
}

func NewMemoryLastSearchStore() *MemoryLastSearchStore {
	return &MemoryLastSearchStore{
		items: make(map[string][]models.LastFlightSearch),
		now:   time.Now,
	}
}

func (s *MemoryLastSearchStore) Add(_ context.Context, userID string, search models.LastFlightSearch) error {
	if search.CreatedAt.IsZero() {
		search.CreatedAt = s.now()
	}
	s.mu.Lock()
	s.items[userID] = mergeSearch(s.items[userID], search)
	s.mu.Unlock()
	return nil
}

func (s *MemoryLastSearchStore) List(_ context.Context, userID string) ([]models.LastFlightSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LastFlightSearch, len(s.items[userID]))
	copy(out, s.items[userID])
	return out, nil
}
