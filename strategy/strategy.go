// Package strategy holds the static basic-strategy chart for the modeled
// game (8 decks, dealer stands on all 17s, no double after split, one split,
// no surrender) plus the Hi-Lo index deviations the original chart carries.
// It is the lookup baseline the Monte Carlo advisor is compared against, and
// the fallback recommendation when simulation is skipped.
package strategy

import (
	"math"

	"shoe-advisor/cards"
)

// Action is a player decision at a blackjack hand.
type Action string

const (
	Stand  Action = "Stand"
	Hit    Action = "Hit"
	Double Action = "Double"
	Split  Action = "Split"
)

// Actions lists all actions in enumeration order. EV ties break toward the
// earlier entry.
var Actions = []Action{Stand, Hit, Double, Split}

// Recommend returns the chart play for the hand against the dealer upcard at
// the given true count. Pair overrides soft.
func Recommend(total int, dealerUp cards.Rank, soft, pair bool, trueCount float64) Action {
	if pair {
		soft = false
	}

	dealer := dealerUp.Value()
	tc := int(math.Round(trueCount))

	if pair {
		return recommendPair(total, dealer, tc)
	}
	if soft {
		return recommendSoft(total, dealer)
	}
	return recommendHard(total, dealer, tc)
}

// Pairs, keyed on the combined total (22 = A,A; 20 = ten-pair).
func recommendPair(total, dealer, tc int) Action {
	switch total {
	case 22: // A,A
		return Split
	case 20: // T,T — deviation: split against 5/6 at tc >= +5
		if (dealer == 5 || dealer == 6) && tc >= 5 {
			return Split
		}
		return Stand
	case 18: // 9,9
		switch dealer {
		case 2, 3, 4, 5, 6, 8, 9:
			return Split
		}
		return Stand
	case 16: // 8,8
		return Split
	case 14: // 7,7
		if dealer >= 2 && dealer <= 7 {
			return Split
		}
		return Hit
	case 12: // 6,6
		if dealer >= 2 && dealer <= 6 {
			return Split
		}
		return Hit
	case 10: // 5,5 — never split, play as hard 10
		if dealer <= 9 {
			return Double
		}
		return Hit
	case 8: // 4,4 — no DAS, so just hit
		return Hit
	case 6, 4: // 3,3 and 2,2
		if dealer >= 4 && dealer <= 7 {
			return Split
		}
		return Hit
	}
	return Hit
}

func recommendSoft(total, dealer int) Action {
	switch {
	case total == 13 || total == 14:
		if dealer == 5 || dealer == 6 {
			return Double
		}
		return Hit
	case total == 15 || total == 16:
		if dealer >= 4 && dealer <= 6 {
			return Double
		}
		return Hit
	case total == 17:
		if dealer >= 3 && dealer <= 6 {
			return Double
		}
		return Hit
	case total == 18:
		switch {
		case dealer >= 3 && dealer <= 6:
			return Double
		case dealer == 2 || dealer == 7 || dealer == 8:
			return Stand
		default:
			return Hit
		}
	case total >= 19:
		return Stand
	}
	return Hit
}

func recommendHard(total, dealer, tc int) Action {
	// Hi-Lo deviations (Illustrious 18 subset) take precedence over the
	// basic rows they modify.
	switch {
	case total == 16 && dealer == 10:
		if tc >= 0 {
			return Stand
		}
		return Hit
	case total == 15 && dealer == 10:
		if tc >= 4 {
			return Stand
		}
		return Hit
	case total == 12 && dealer == 2:
		if tc >= 3 {
			return Stand
		}
		return Hit
	case total == 12 && dealer == 3:
		if tc >= 2 {
			return Stand
		}
		return Hit
	case total == 13 && dealer == 2:
		if tc <= -1 {
			return Hit
		}
		return Stand
	case total == 13 && dealer == 3:
		if tc <= -2 {
			return Hit
		}
		return Stand
	}

	switch {
	case total >= 17:
		return Stand
	case total >= 13 && dealer <= 6:
		return Stand
	case total == 12 && dealer >= 4 && dealer <= 6:
		return Stand
	case total == 11:
		return Double
	case total == 10:
		if dealer <= 9 {
			return Double
		}
		return Hit
	case total == 9:
		if dealer >= 3 && dealer <= 6 {
			return Double
		}
		return Hit
	}
	return Hit
}

// StandsOnStiff reports whether the chart stands a stiff hard total (12-16)
// against the given dealer upcard value: 12 stands against 4-6, 13-16 stand
// against 2-6. The split sub-hand continuation policy uses this rule.
func StandsOnStiff(total, dealerValue int) bool {
	if total == 12 {
		return dealerValue >= 4 && dealerValue <= 6
	}
	if total >= 13 && total <= 16 {
		return dealerValue <= 6
	}
	return false
}
