package events

import (
	"time"

	"shoe-advisor/cards"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Session lifecycle events
type SessionOpened struct {
	SessionID string
	NumDecks  int
	At        time.Time
}

func (s SessionOpened) Name() string { return "SESSION_OPENED" }

type SessionClosed struct {
	SessionID string
	At        time.Time
}

func (s SessionClosed) Name() string { return "SESSION_CLOSED" }

// Shoe tracking events
type CardDealt struct {
	SessionID      string
	Rank           cards.Rank
	Tag            int
	RunningCount   int
	TrueCount      float64
	RemainingCards int
	RemainingDecks float64
	At             time.Time
}

func (c CardDealt) Name() string { return "CARD_DEALT" }

type ShoeReset struct {
	SessionID string
	NumDecks  int
	At        time.Time
}

func (s ShoeReset) Name() string { return "SHOE_RESET" }

// Advisory events
type EvaluationCompleted struct {
	SessionID    string
	PlayerTotal  int
	DealerUpcard cards.Rank
	Soft         bool
	Pair         bool
	Trials       int
	EVs          map[string]float64
	Best         string
	TableMove    string
	At           time.Time
}

func (e EvaluationCompleted) Name() string { return "EVALUATION_COMPLETED" }
