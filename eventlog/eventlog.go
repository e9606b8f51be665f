package eventlog

import (
	"fmt"
	"sync"

	"shoe-advisor/domain/events"
)

// Store is the interface for recording and retrieving session events.
type Store interface {
	Append(event events.Event) error
	LoadEvents(sessionID string) ([]events.Event, error)
}

// InMemoryStore keeps each session's event history in memory. The history
// outlives the session itself, so a closed session's shoe can still be
// reviewed.
type InMemoryStore struct {
	events map[string][]events.Event
	mutex  sync.RWMutex
}

// NewInMemoryStore creates a new in-memory event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events: make(map[string][]events.Event),
	}
}

// Append adds a new event to the store, keyed by its session.
func (s *InMemoryStore) Append(event events.Event) error {
	sessionID := events.ExtractSessionID(event)
	if sessionID == "" {
		return fmt.Errorf("event %s has no session ID", event.Name())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[sessionID] = append(s.events[sessionID], event)
	return nil
}

// LoadEvents retrieves all events recorded for the given session, in order.
func (s *InMemoryStore) LoadEvents(sessionID string) ([]events.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stored, exists := s.events[sessionID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]events.Event, len(stored))
		copy(result, stored)
		return result, nil
	}

	// Return empty slice if no events found
	return []events.Event{}, nil
}

// GetEvents returns every recorded event across all sessions.
func (s *InMemoryStore) GetEvents() []events.Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var all []events.Event
	for _, e := range s.events {
		all = append(all, e...)
	}
	return all
}
