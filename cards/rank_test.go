package cards

import (
	"errors"
	"testing"
)

func TestRankFromString(t *testing.T) {
	cases := map[string]Rank{
		"2":  Two,
		"7":  Seven,
		"10": Ten,
		"t":  Ten,
		"T":  Ten,
		"j":  Jack,
		"Q":  Queen,
		"k":  King,
		"a":  Ace,
		" A": Ace,
	}

	for input, want := range cases {
		got, err := RankFromString(input)
		if err != nil {
			t.Errorf("RankFromString(%q) returned error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("RankFromString(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestRankFromStringInvalid(t *testing.T) {
	for _, input := range []string{"", "1", "11", "X", "joker"} {
		if _, err := RankFromString(input); !errors.Is(err, ErrInvalidRank) {
			t.Errorf("RankFromString(%q) error = %v, want ErrInvalidRank", input, err)
		}
	}
}

func TestRankValue(t *testing.T) {
	if got := Two.Value(); got != 2 {
		t.Errorf("Two.Value() = %d, want 2", got)
	}
	if got := Nine.Value(); got != 9 {
		t.Errorf("Nine.Value() = %d, want 9", got)
	}
	for _, r := range []Rank{Ten, Jack, Queen, King} {
		if got := r.Value(); got != 10 {
			t.Errorf("%s.Value() = %d, want 10", r, got)
		}
	}
	if got := Ace.Value(); got != 11 {
		t.Errorf("Ace.Value() = %d, want 11", got)
	}
}

func TestRankHiLoTag(t *testing.T) {
	tagSum := 0
	for _, r := range Ranks {
		tagSum += r.HiLoTag()
	}
	if tagSum != 0 {
		t.Errorf("Hi-Lo tags over all ranks sum to %d, want 0", tagSum)
	}

	for _, r := range []Rank{Two, Three, Four, Five, Six} {
		if got := r.HiLoTag(); got != 1 {
			t.Errorf("%s.HiLoTag() = %d, want 1", r, got)
		}
	}
	for _, r := range []Rank{Seven, Eight, Nine} {
		if got := r.HiLoTag(); got != 0 {
			t.Errorf("%s.HiLoTag() = %d, want 0", r, got)
		}
	}
	for _, r := range []Rank{Ten, Jack, Queen, King, Ace} {
		if got := r.HiLoTag(); got != -1 {
			t.Errorf("%s.HiLoTag() = %d, want -1", r, got)
		}
	}
}

func TestRankIndex(t *testing.T) {
	for i, r := range Ranks {
		if got := r.Index(); got != i {
			t.Errorf("%s.Index() = %d, want %d", r, got, i)
		}
	}
	if got := Rank("W").Index(); got != -1 {
		t.Errorf(`Rank("W").Index() = %d, want -1`, got)
	}
	if Rank("W").Valid() {
		t.Error(`Rank("W").Valid() should be false`)
	}
}
