package simulation

import (
	"errors"
	"math/rand"

	"shoe-advisor/cards"
)

// ErrDeckExhausted means a working deck ran out of cards mid-trial. With a
// realistic multi-deck shoe this is practically unreachable; when it happens
// the trial is aborted rather than fabricating a card.
var ErrDeckExhausted = errors.New("working deck exhausted during simulation")

// workingDeck is the ephemeral per-trial copy of the shoe composition.
// Flat array, cloned by value; drawing mutates this copy only.
type workingDeck struct {
	counts    [cards.NumRanks]int
	remaining int
}

func newWorkingDeck(snap Snapshot) workingDeck {
	return workingDeck{counts: snap.Counts, remaining: snap.Remaining}
}

// draw picks a rank without replacement, weighted by remaining counts: a rank
// with c of total cards left is drawn with probability c/total. Cumulative
// scan over the thirteen ranks.
func (d *workingDeck) draw(rng *rand.Rand) (cards.Rank, error) {
	if d.remaining <= 0 {
		return "", ErrDeckExhausted
	}

	pick := rng.Intn(d.remaining) + 1
	cum := 0
	for i, c := range d.counts {
		if c <= 0 {
			continue
		}
		cum += c
		if pick <= cum {
			d.counts[i]--
			d.remaining--
			return cards.Ranks[i], nil
		}
	}

	return "", ErrDeckExhausted
}

// remove takes a specific known card (the dealer upcard) out of the deck.
func (d *workingDeck) remove(rank cards.Rank) bool {
	i := rank.Index()
	if i < 0 || d.counts[i] <= 0 {
		return false
	}
	d.counts[i]--
	d.remaining--
	return true
}
