package domain

import (
	"errors"
	"fmt"
	"sync"

	"shoe-advisor/cards"
)

const (
	CardsPerDeck    = 52
	DefaultNumDecks = 8
)

// ErrShoeExhausted is returned when dealing a rank whose remaining count is
// already zero. The shoe is left unchanged.
var ErrShoeExhausted = errors.New("no cards of rank left in shoe")

// Shoe is the authoritative record of the currently active physical shoe:
// the per-rank composition of cards not yet seen, plus the Hi-Lo running and
// true counts over everything dealt so far.
//
// DealCard and Reset take the write lock; all reads take the read lock, so a
// composition snapshot taken for simulation can never observe a half-applied
// deal.
type Shoe struct {
	mu           sync.RWMutex
	numDecks     int
	remaining    int
	runningCount int
	trueCount    float64
	counts       [cards.NumRanks]int
}

// CountUpdate is the result of dealing a single card.
type CountUpdate struct {
	RunningCount   int     `json:"runningCount"`
	TrueCount      float64 `json:"trueCount"`
	RemainingDecks float64 `json:"remainingDecks"`
}

// ShoeStatus is a point-in-time, read-only view of the shoe.
type ShoeStatus struct {
	NumDecks       int                `json:"numDecks"`
	RunningCount   int                `json:"runningCount"`
	TrueCount      float64            `json:"trueCount"`
	RemainingCards int                `json:"remainingCards"`
	RemainingDecks float64            `json:"remainingDecks"`
	Penetration    float64            `json:"penetration"`
	Composition    map[cards.Rank]int `json:"composition"`
}

// BettingAdvice is a bet-sizing recommendation derived from the true count.
type BettingAdvice string

const (
	BetIncrease        BettingAdvice = "INCREASE"
	BetSlightAdvantage BettingAdvice = "SLIGHT_ADVANTAGE"
	BetMinimum         BettingAdvice = "MINIMUM"
)

// NewShoe creates a full shoe of numDecks decks (DefaultNumDecks when
// numDecks is not positive).
func NewShoe(numDecks int) *Shoe {
	s := &Shoe{}
	s.reset(numDecks)
	return s
}

func (s *Shoe) reset(numDecks int) {
	if numDecks <= 0 {
		numDecks = DefaultNumDecks
	}
	s.numDecks = numDecks
	s.remaining = numDecks * CardsPerDeck
	s.runningCount = 0
	s.trueCount = 0
	for i := range s.counts {
		s.counts[i] = 4 * numDecks
	}
}

// Reset reinitializes the shoe to a fresh full composition, as when a new
// physical shoe is brought in.
func (s *Shoe) Reset(numDecks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(numDecks)
}

// DealCard removes one card of the given rank from the shoe and updates the
// Hi-Lo counts. It fails with cards.ErrInvalidRank for an unknown rank and
// with ErrShoeExhausted when no cards of the rank remain; on failure the shoe
// is unchanged.
func (s *Shoe) DealCard(rank cards.Rank) (CountUpdate, error) {
	idx := rank.Index()
	if idx < 0 {
		return CountUpdate{}, fmt.Errorf("%w: %q", cards.ErrInvalidRank, string(rank))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[idx] <= 0 {
		return CountUpdate{}, fmt.Errorf("%w: %s", ErrShoeExhausted, rank)
	}

	s.counts[idx]--
	s.remaining--
	s.runningCount += rank.HiLoTag()
	s.trueCount = trueCount(s.runningCount, s.remaining)

	return CountUpdate{
		RunningCount:   s.runningCount,
		TrueCount:      s.trueCount,
		RemainingDecks: remainingDecks(s.remaining),
	}, nil
}

// Status returns a snapshot of the shoe. The composition map is a copy;
// mutating it does not affect the shoe.
func (s *Shoe) Status() ShoeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	composition := make(map[cards.Rank]int, cards.NumRanks)
	for i, r := range cards.Ranks {
		composition[r] = s.counts[i]
	}

	total := s.numDecks * CardsPerDeck
	return ShoeStatus{
		NumDecks:       s.numDecks,
		RunningCount:   s.runningCount,
		TrueCount:      s.trueCount,
		RemainingCards: s.remaining,
		RemainingDecks: remainingDecks(s.remaining),
		Penetration:    float64(total-s.remaining) / float64(total),
		Composition:    composition,
	}
}

// CompositionArray returns a copy of the per-rank counts (indexed by
// cards.Rank.Index()) together with the total remaining, atomically.
func (s *Shoe) CompositionArray() ([cards.NumRanks]int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts, s.remaining
}

// NumDecks returns the number of decks the shoe was built from.
func (s *Shoe) NumDecks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.numDecks
}

// BettingRecommendation maps the current true count onto a bet-sizing advice:
// tc >= 3 increase, 1 <= tc < 3 slight advantage, otherwise minimum bet.
func (s *Shoe) BettingRecommendation() BettingAdvice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.trueCount >= 3:
		return BetIncrease
	case s.trueCount >= 1:
		return BetSlightAdvantage
	default:
		return BetMinimum
	}
}

func remainingDecks(remainingCards int) float64 {
	return float64(remainingCards) / CardsPerDeck
}

func trueCount(runningCount, remainingCards int) float64 {
	decks := remainingDecks(remainingCards)
	if decks <= 0 {
		return 0
	}
	return float64(runningCount) / decks
}
