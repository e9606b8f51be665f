package domain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"shoe-advisor/domain/events"
	"shoe-advisor/eventlog"

	"github.com/sanity-io/litter"
)

// ErrSessionNotFound is returned for lookups of unknown or closed sessions.
var ErrSessionNotFound = errors.New("session not found")

// Floor is the registry of live shoe sessions. It re-emits every session
// event upward so a single handler (the server dispatcher) sees all of them.
// Every HTTP handler and websocket pump goroutine shares the one Floor, so
// the session map and the event log are mutex-guarded.
type Floor struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// Debug dumps every session event to stdout.
	Debug bool

	// Log, when set, records every event for later review.
	Log eventlog.Store

	// eventMu serializes emission: Events ordering matches handler-call
	// ordering even when sessions emit concurrently.
	eventMu       sync.Mutex
	Events        []events.Event
	eventHandlers []events.EventHandler
}

// NewFloor creates an empty floor.
func NewFloor() *Floor {
	return &Floor{
		sessions: make(map[string]*Session),
	}
}

// OpenSession starts tracking a new physical shoe.
func (f *Floor) OpenSession(numDecks int) (*Session, error) {
	session := NewSession(numDecks)
	session.RegisterEventHandler(f.handleSessionEvent)

	f.mu.Lock()
	if f.sessions == nil {
		f.sessions = make(map[string]*Session)
	}
	f.sessions[session.ID] = session
	f.mu.Unlock()

	f.emitEvent(events.SessionOpened{
		SessionID: session.ID,
		NumDecks:  session.Shoe.NumDecks(),
		At:        time.Now(),
	})

	return session, nil
}

// GetSession retrieves a session by ID.
func (f *Floor) GetSession(sessionID string) (*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	session, exists := f.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// CloseSession stops tracking a session.
func (f *Floor) CloseSession(sessionID string) error {
	f.mu.Lock()
	if _, exists := f.sessions[sessionID]; !exists {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(f.sessions, sessionID)
	f.mu.Unlock()

	f.emitEvent(events.SessionClosed{
		SessionID: sessionID,
		At:        time.Now(),
	})

	return nil
}

// Sessions returns all open sessions.
func (f *Floor) Sessions() []*Session {
	f.mu.RLock()
	defer f.mu.RUnlock()

	sessions := make([]*Session, 0, len(f.sessions))
	for _, session := range f.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (f *Floor) handleSessionEvent(event events.Event) {
	if f.Debug {
		fmt.Println("---")
		fmt.Println("Floor received event from session:", event.Name())
		litter.D(event)
	}

	f.emitEvent(event)
}

// AddEventHandler adds an event handler to the floor.
func (f *Floor) AddEventHandler(handler events.EventHandler) {
	f.eventMu.Lock()
	defer f.eventMu.Unlock()
	f.eventHandlers = append(f.eventHandlers, handler)
}

func (f *Floor) emitEvent(event events.Event) {
	f.eventMu.Lock()
	defer f.eventMu.Unlock()

	f.Events = append(f.Events, event)

	if f.Log != nil {
		if err := f.Log.Append(event); err != nil && f.Debug {
			fmt.Println("Floor could not log event:", err)
		}
	}

	for _, handler := range f.eventHandlers {
		handler(event)
	}
}
