package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRank is returned when a rank symbol is not one of 2-10, J, Q, K, A.
var ErrInvalidRank = errors.New("invalid rank")

// Rank represents a playing card rank. Suits never matter for shoe
// composition tracking, so a card is fully described by its rank.
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// NumRanks is the number of distinct ranks; composition arrays are indexed
// by Rank.Index() in the order of Ranks.
const NumRanks = 13

// Ranks lists all ranks in canonical order.
var Ranks = [NumRanks]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankIndex = func() map[Rank]int {
	m := make(map[Rank]int, NumRanks)
	for i, r := range Ranks {
		m[r] = i
	}
	return m
}()

// RankFromString parses a rank from its string representation.
// e.g. "10", "t", "T" -> Ten; "a" -> Ace; "7" -> Seven
func RankFromString(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
}

// Value returns the blackjack value of the rank. Aces count as 11 here;
// the soft-ace downgrade to 1 is hand-level logic, not a rank property.
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 11
	case Ten, Jack, Queen, King:
		return 10
	default:
		return int(r[0] - '0')
	}
}

// HiLoTag returns the Hi-Lo counting tag of the rank:
// +1 for 2-6, 0 for 7-9, -1 for 10/J/Q/K/A.
func (r Rank) HiLoTag() int {
	switch r {
	case Two, Three, Four, Five, Six:
		return 1
	case Seven, Eight, Nine:
		return 0
	default:
		return -1
	}
}

// Index returns the rank's position in Ranks, or -1 for an unknown rank.
func (r Rank) Index() int {
	if i, ok := rankIndex[r]; ok {
		return i
	}
	return -1
}

// Valid checks if the rank is one of the thirteen known ranks.
func (r Rank) Valid() bool {
	return r.Index() >= 0
}

// String returns the string representation of the rank.
func (r Rank) String() string {
	return string(r)
}
