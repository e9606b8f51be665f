package simulation

import (
	"errors"
	"fmt"

	"shoe-advisor/cards"
)

// ErrInvalidHand flags an impossible player total for the declared shape.
var ErrInvalidHand = errors.New("invalid hand")

// Hand describes the player's decision point. PlayerTotal is the combined
// semantic total (22 means a pair of aces, 20 with Pair set means a ten
// pair). Pair overrides Soft.
type Hand struct {
	PlayerTotal  int
	DealerUpcard cards.Rank
	Soft         bool
	Pair         bool
}

func (h Hand) normalized() Hand {
	if h.Pair {
		h.Soft = false
	}
	return h
}

func (h Hand) validate() error {
	if !h.DealerUpcard.Valid() {
		return fmt.Errorf("%w: dealer upcard %q", cards.ErrInvalidRank, string(h.DealerUpcard))
	}
	if h.Pair {
		if h.PlayerTotal < 4 || h.PlayerTotal > 22 || h.PlayerTotal%2 != 0 {
			return fmt.Errorf("%w: pair total %d", ErrInvalidHand, h.PlayerTotal)
		}
		return nil
	}
	if h.PlayerTotal < 2 || h.PlayerTotal > 21 {
		return fmt.Errorf("%w: player total %d", ErrInvalidHand, h.PlayerTotal)
	}
	return nil
}

// handTotal is a running blackjack total with its unconverted soft aces.
// Aces come in as 11 and convert down to 1 one at a time whenever the total
// would otherwise bust.
type handTotal struct {
	total    int
	softAces int
}

func newHandTotal(total int, soft bool) handTotal {
	h := handTotal{total: total}
	if soft {
		h.softAces = 1
	}
	return h
}

func (h *handTotal) add(rank cards.Rank) {
	if rank == cards.Ace {
		h.softAces++
	}
	h.total += rank.Value()
	h.normalize()
}

func (h *handTotal) normalize() {
	for h.total > 21 && h.softAces > 0 {
		h.total -= 10
		h.softAces--
	}
}

func (h *handTotal) busted() bool {
	return h.total > 21
}

func (h *handTotal) soft() bool {
	return h.softAces > 0
}

// splitPairRank derives the originating pair rank from the combined total:
// 22 is a pair of aces, 20 a ten pair, anything else half the total.
func splitPairRank(total int) cards.Rank {
	switch total {
	case 22:
		return cards.Ace
	case 20:
		return cards.Ten
	}
	switch v := total / 2; v {
	case 11:
		return cards.Ace
	case 10:
		return cards.Ten
	default:
		return cards.Rank(fmt.Sprintf("%d", v))
	}
}
