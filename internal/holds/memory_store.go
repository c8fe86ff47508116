package holds

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is the single-node fallback used when Redis is not configured.
// One mutex covers the check-and-set across all requested seats, which gives
// the same all-or-nothing behavior as the Lua script.
type MemoryStore struct {
	mu    sync.Mutex
	holds map[string]*memoryHold
	seats map[string]string // "eventID:seatLabel" -> holdID
}

type memoryHold struct {
	hold      Hold
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		holds: make(map[string]*memoryHold),
		seats: make(map[string]string),
	}
}

func seatKey(eventID, seat string) string {
	return eventID + ":" + seat
}

// evictExpired removes lapsed holds. Callers must hold the mutex.
func (s *MemoryStore) evictExpired(now time.Time) {
	for id, h := range s.holds {
		if now.After(h.expiresAt) {
			for _, seat := range h.hold.Seats {
				delete(s.seats, seatKey(h.hold.EventID, seat))
			}
			delete(s.holds, id)
		}
	}
}

func (s *MemoryStore) Hold(_ context.Context, holdID, eventID, customerKey string, seats []string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.evictExpired(now)

	for _, seat := range seats {
		if _, taken := s.seats[seatKey(eventID, seat)]; taken {
			return fmt.Errorf("%w: %s", ErrSeatHeld, seat)
		}
	}

	held := make([]string, len(seats))
	copy(held, seats)
	s.holds[holdID] = &memoryHold{
		hold: Hold{
			ID:          holdID,
			EventID:     eventID,
			CustomerKey: customerKey,
			Seats:       held,
			ExpiresAt:   now.Add(ttl),
		},
		expiresAt: now.Add(ttl),
	}
	for _, seat := range seats {
		s.seats[seatKey(eventID, seat)] = holdID
	}

	return nil
}

func (s *MemoryStore) Release(_ context.Context, holdID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(time.Now())

	h, ok := s.holds[holdID]
	if !ok {
		return 0, ErrHoldNotFound
	}

	for _, seat := range h.hold.Seats {
		delete(s.seats, seatKey(h.hold.EventID, seat))
	}
	delete(s.holds, holdID)

	return len(h.hold.Seats), nil
}

func (s *MemoryStore) Get(_ context.Context, holdID string) (*Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(time.Now())

	h, ok := s.holds[holdID]
	if !ok {
		return nil, ErrHoldNotFound
	}

	out := h.hold
	out.Seats = append([]string(nil), h.hold.Seats...)
	return &out, nil
}
