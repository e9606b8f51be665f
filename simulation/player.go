package simulation

import (
	"math/rand"

	"shoe-advisor/cards"
	"shoe-advisor/strategy"
)

// Sub-game resolution for each action. Every function returns the signed
// profit of one trial in units of the original bet, with wager scaling
// already applied (double counts ×2, split sums both hands).

func playStand(hand Hand, deck *workingDeck, rng *rand.Rand) (float64, error) {
	dealer, err := dealerPlay(hand.DealerUpcard, deck, rng)
	if err != nil {
		return 0, err
	}
	return settle(hand.PlayerTotal, dealer, 1), nil
}

// playHit draws the forced card, then continues under the fixed simplified
// policy: soft totals keep hitting through soft 18, hard totals only while
// 11 or less. This is a deterministic approximation of further play, not an
// optimal-stopping search.
func playHit(hand Hand, deck *workingDeck, rng *rand.Rand) (float64, error) {
	h := newHandTotal(hand.PlayerTotal, hand.Soft)

	r, err := deck.draw(rng)
	if err != nil {
		return 0, err
	}
	h.add(r)
	if h.busted() {
		return -1, nil
	}

	for keepsHitting(h) {
		r, err := deck.draw(rng)
		if err != nil {
			return 0, err
		}
		h.add(r)
		if h.busted() {
			return -1, nil
		}
	}

	dealer, err := dealerPlay(hand.DealerUpcard, deck, rng)
	if err != nil {
		return 0, err
	}
	return settle(h.total, dealer, 1), nil
}

func keepsHitting(h handTotal) bool {
	if h.soft() {
		return h.total <= 18
	}
	return h.total <= 11
}

// playDouble draws exactly one card at doubled stakes, then stands.
func playDouble(hand Hand, deck *workingDeck, rng *rand.Rand) (float64, error) {
	h := newHandTotal(hand.PlayerTotal, hand.Soft)

	r, err := deck.draw(rng)
	if err != nil {
		return 0, err
	}
	h.add(r)
	if h.busted() {
		return -2, nil
	}

	dealer, err := dealerPlay(hand.DealerUpcard, deck, rng)
	if err != nil {
		return 0, err
	}
	return settle(h.total, dealer, 2), nil
}

// playSplit forms the two sub-hands in a single pass, then draws one shared
// dealer hand and settles both against it. Split aces receive exactly one
// card each and stand; other split hands may draw one more card under the
// chart-style stiff rule, and never double (no DAS).
func playSplit(hand Hand, deck *workingDeck, rng *rand.Rand) (float64, error) {
	pairRank := splitPairRank(hand.PlayerTotal)
	dealerVal := hand.DealerUpcard.Value()

	var totals [2]int
	for i := range totals {
		h := handTotal{}
		h.add(pairRank)

		r, err := deck.draw(rng)
		if err != nil {
			return 0, err
		}
		h.add(r)

		if pairRank != cards.Ace {
			draw := false
			if h.total <= 11 {
				draw = true
			} else if h.total <= 16 && !strategy.StandsOnStiff(h.total, dealerVal) {
				draw = true
			}
			if draw {
				r2, err := deck.draw(rng)
				if err != nil {
					return 0, err
				}
				h.add(r2)
			}
		}

		totals[i] = h.total
	}

	dealer, err := dealerPlay(hand.DealerUpcard, deck, rng)
	if err != nil {
		return 0, err
	}
	return settle(totals[0], dealer, 1) + settle(totals[1], dealer, 1), nil
}
