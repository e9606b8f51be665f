package domain

import (
	"sync"
	"time"

	"shoe-advisor/cards"
	"shoe-advisor/domain/events"

	"github.com/google/uuid"
)

// Session tracks one physical shoe from the moment it is put into play.
// It wraps the Shoe with an identity and emits domain events for every
// observed card, reset, and completed evaluation.
type Session struct {
	ID       string
	Shoe     *Shoe
	OpenedAt time.Time

	// events; eventMu serializes emission across concurrent deals
	eventMu       sync.Mutex
	Events        []events.Event
	eventHandlers []events.EventHandler
}

// NewSession opens a session over a fresh full shoe.
func NewSession(numDecks int) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Shoe:     NewShoe(numDecks),
		OpenedAt: time.Now(),
	}
}

// DealCard records an observed card and emits a CardDealt event on success.
func (s *Session) DealCard(rank string) (CountUpdate, error) {
	r, err := cards.RankFromString(rank)
	if err != nil {
		return CountUpdate{}, err
	}

	update, err := s.Shoe.DealCard(r)
	if err != nil {
		return CountUpdate{}, err
	}

	status := s.Shoe.Status()
	s.emitEvent(events.CardDealt{
		SessionID:      s.ID,
		Rank:           r,
		Tag:            r.HiLoTag(),
		RunningCount:   update.RunningCount,
		TrueCount:      update.TrueCount,
		RemainingCards: status.RemainingCards,
		RemainingDecks: update.RemainingDecks,
		At:             time.Now(),
	})

	return update, nil
}

// ResetShoe swaps in a fresh full shoe of numDecks decks.
func (s *Session) ResetShoe(numDecks int) {
	s.Shoe.Reset(numDecks)
	s.emitEvent(events.ShoeReset{
		SessionID: s.ID,
		NumDecks:  s.Shoe.NumDecks(),
		At:        time.Now(),
	})
}

// RecordEvaluation publishes the result of an EV evaluation run against this
// session's shoe, so watching clients see the advice as it is produced.
func (s *Session) RecordEvaluation(ev events.EvaluationCompleted) {
	ev.SessionID = s.ID
	ev.At = time.Now()
	s.emitEvent(ev)
}

// RegisterEventHandler registers a callback invoked for every session event.
func (s *Session) RegisterEventHandler(handler events.EventHandler) {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	s.eventHandlers = append(s.eventHandlers, handler)
}

func (s *Session) emitEvent(event events.Event) {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()

	s.Events = append(s.Events, event)

	for _, handler := range s.eventHandlers {
		handler(event)
	}
}
