package simulation

import (
	"math/rand"

	"shoe-advisor/cards"
)

// dealerPlay draws the hole card from the working deck and plays out the
// dealer hand: hit while below 17, stand on every 17 including soft (S17).
func dealerPlay(upcard cards.Rank, deck *workingDeck, rng *rand.Rand) (int, error) {
	hole, err := deck.draw(rng)
	if err != nil {
		return 0, err
	}

	dealer := handTotal{}
	dealer.add(upcard)
	dealer.add(hole)

	for dealer.total < 17 {
		r, err := deck.draw(rng)
		if err != nil {
			return 0, err
		}
		dealer.add(r)
	}

	return dealer.total, nil
}

// settle scores a finished player total against the dealer's: busted player
// loses the wager before the dealer is even considered, dealer bust pays,
// otherwise higher total wins and equal totals push.
func settle(player, dealer int, wager float64) float64 {
	switch {
	case player > 21:
		return -wager
	case dealer > 21:
		return wager
	case player > dealer:
		return wager
	case player < dealer:
		return -wager
	default:
		return 0
	}
}
