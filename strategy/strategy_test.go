package strategy

import (
	"testing"

	"shoe-advisor/cards"

	"github.com/stretchr/testify/assert"
)

func TestRecommendPairs(t *testing.T) {
	// Aces and eights always split.
	assert.Equal(t, Split, Recommend(22, cards.Ten, false, true, 0))
	assert.Equal(t, Split, Recommend(16, cards.Ace, false, true, 0))

	// Ten-pair stands, except the high-count deviation against 5/6.
	assert.Equal(t, Stand, Recommend(20, cards.Five, false, true, 0))
	assert.Equal(t, Split, Recommend(20, cards.Five, false, true, 5))
	assert.Equal(t, Stand, Recommend(20, cards.Ten, false, true, 5))

	// Nines split against 2-6 and 8-9, stand against 7/10/A.
	assert.Equal(t, Split, Recommend(18, cards.Six, false, true, 0))
	assert.Equal(t, Split, Recommend(18, cards.Nine, false, true, 0))
	assert.Equal(t, Stand, Recommend(18, cards.Seven, false, true, 0))
	assert.Equal(t, Stand, Recommend(18, cards.Ace, false, true, 0))

	// Fives are a hard 10, never split.
	assert.Equal(t, Double, Recommend(10, cards.Six, false, true, 0))
	assert.Equal(t, Hit, Recommend(10, cards.Ten, false, true, 0))

	// Pair overrides soft.
	assert.Equal(t, Split, Recommend(22, cards.Six, true, true, 0))
}

func TestRecommendSoft(t *testing.T) {
	assert.Equal(t, Double, Recommend(13, cards.Five, true, false, 0))
	assert.Equal(t, Hit, Recommend(13, cards.Four, true, false, 0))
	assert.Equal(t, Double, Recommend(16, cards.Four, true, false, 0))
	assert.Equal(t, Double, Recommend(17, cards.Three, true, false, 0))
	assert.Equal(t, Hit, Recommend(17, cards.Two, true, false, 0))

	// Soft 18: double 3-6, stand 2/7/8, hit 9/10/A.
	assert.Equal(t, Double, Recommend(18, cards.Six, true, false, 0))
	assert.Equal(t, Stand, Recommend(18, cards.Seven, true, false, 0))
	assert.Equal(t, Hit, Recommend(18, cards.Nine, true, false, 0))
	assert.Equal(t, Hit, Recommend(18, cards.Ace, true, false, 0))

	assert.Equal(t, Stand, Recommend(19, cards.Ten, true, false, 0))
}

func TestRecommendHardBasics(t *testing.T) {
	assert.Equal(t, Stand, Recommend(17, cards.Ace, false, false, 0))
	assert.Equal(t, Stand, Recommend(13, cards.Six, false, false, 0))
	assert.Equal(t, Hit, Recommend(12, cards.Three, false, false, 0))
	assert.Equal(t, Stand, Recommend(12, cards.Four, false, false, 0))
	assert.Equal(t, Double, Recommend(11, cards.Ten, false, false, 0))
	assert.Equal(t, Double, Recommend(10, cards.Nine, false, false, 0))
	assert.Equal(t, Hit, Recommend(10, cards.Ten, false, false, 0))
	assert.Equal(t, Double, Recommend(9, cards.Four, false, false, 0))
	assert.Equal(t, Hit, Recommend(9, cards.Two, false, false, 0))
	assert.Equal(t, Hit, Recommend(8, cards.Six, false, false, 0))
}

func TestRecommendHardDeviations(t *testing.T) {
	// 16 v 10: stand at tc >= 0, hit below.
	assert.Equal(t, Stand, Recommend(16, cards.Ten, false, false, 0))
	assert.Equal(t, Hit, Recommend(16, cards.Ten, false, false, -1))

	// 15 v 10: stand only at tc >= 4.
	assert.Equal(t, Hit, Recommend(15, cards.Ten, false, false, 3))
	assert.Equal(t, Stand, Recommend(15, cards.Ten, false, false, 4))

	// 12 v 2 and 12 v 3.
	assert.Equal(t, Stand, Recommend(12, cards.Two, false, false, 3))
	assert.Equal(t, Hit, Recommend(12, cards.Two, false, false, 2))
	assert.Equal(t, Stand, Recommend(12, cards.Three, false, false, 2))

	// 13 v 2 and 13 v 3 hit at sufficiently negative counts.
	assert.Equal(t, Hit, Recommend(13, cards.Two, false, false, -1))
	assert.Equal(t, Stand, Recommend(13, cards.Two, false, false, 0))
	assert.Equal(t, Hit, Recommend(13, cards.Three, false, false, -2))
	assert.Equal(t, Stand, Recommend(13, cards.Three, false, false, -1))

	// True count rounds to nearest before indexing.
	assert.Equal(t, Stand, Recommend(16, cards.Ten, false, false, -0.4))
	assert.Equal(t, Hit, Recommend(16, cards.Ten, false, false, -0.6))
}

func TestStandsOnStiff(t *testing.T) {
	assert.True(t, StandsOnStiff(12, 4))
	assert.True(t, StandsOnStiff(12, 6))
	assert.False(t, StandsOnStiff(12, 3))
	assert.True(t, StandsOnStiff(13, 2))
	assert.True(t, StandsOnStiff(16, 6))
	assert.False(t, StandsOnStiff(16, 7))
	assert.False(t, StandsOnStiff(11, 5))
	assert.False(t, StandsOnStiff(17, 5))
}
