package relay

import (
	"sort"
	"sync"
	"time"
)

// Store keeps the most recent delivery per target, expiring entries after
// a TTL. A TTL of 0 keeps entries forever.
type Store struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]Delivery
}

// NewStore creates a delivery store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, data: make(map[string]Delivery)}
}

// Record upserts the latest delivery for its target.
func (s *Store) Record(d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[d.Target] = d
}

// Snapshot returns unexpired deliveries sorted by target.
func (s *Store) Snapshot(now time.Time) []Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl > 0 {
		for target, d := range s.data {
			if now.Sub(d.TS) > s.ttl {
				delete(s.data, target)
			}
		}
	}
	result := make([]Delivery, 0, len(s.data))
	for _, d := range s.data {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Target < result[j].Target
	})
	return result
}
