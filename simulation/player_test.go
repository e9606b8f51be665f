package simulation

import (
	"math/rand"
	"testing"

	"shoe-advisor/cards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealerPlayStandsOnSoft17(t *testing.T) {
	// Only aces left: upcard 6 + hole A is soft 17, which stands under S17.
	deck := newWorkingDeck(riggedSnapshot(map[cards.Rank]int{cards.Ace: 8}))
	rng := rand.New(rand.NewSource(1))

	total, err := dealerPlay(cards.Six, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
	assert.Equal(t, 7, deck.remaining)
}

func TestDealerPlayDrawsToSeventeen(t *testing.T) {
	// All fives: 6 up + 5 + 5 + 5 = 21.
	deck := newWorkingDeck(riggedSnapshot(map[cards.Rank]int{cards.Five: 10}))
	rng := rand.New(rand.NewSource(1))

	total, err := dealerPlay(cards.Six, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
}

func TestDealerPlayCanBust(t *testing.T) {
	// All tens: 6 up + 10 = 16, forced hit busts on 26.
	deck := newWorkingDeck(riggedSnapshot(map[cards.Rank]int{cards.Ten: 10}))
	rng := rand.New(rand.NewSource(1))

	total, err := dealerPlay(cards.Six, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 26, total)
}

func TestSettle(t *testing.T) {
	assert.Equal(t, -1.0, settle(22, 17, 1))
	assert.Equal(t, -2.0, settle(25, 26, 2)) // player bust loses even to a dealer bust
	assert.Equal(t, 1.0, settle(18, 26, 1))
	assert.Equal(t, 2.0, settle(20, 19, 2))
	assert.Equal(t, -1.0, settle(18, 19, 1))
	assert.Equal(t, 0.0, settle(19, 19, 1))
}

func TestPlaySplitAcesGetExactlyOneCard(t *testing.T) {
	// Shoe of sixes: each split ace receives one six (soft 17) and stands.
	// The dealer then draws 6,6 onto the upcard 6 for 18, so both hands lose.
	// A policy that kept hitting the soft 17s would change both the outcome
	// and the number of cards consumed.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Six: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(42))

	profit, err := playSplit(Hand{PlayerTotal: 22, DealerUpcard: cards.Six, Pair: true}, &deck, rng)
	require.NoError(t, err)

	assert.Equal(t, -2.0, profit)
	// Two split cards + dealer hole + one dealer hit.
	assert.Equal(t, snap.Remaining-4, deck.remaining)
}

func TestPlaySplitAcesNeverBust(t *testing.T) {
	// All tens: A+10 is 21 on each hand; dealer shows 10 and flips 10 for 20.
	// Both hands must win; busting is impossible when aces take one card.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Ten: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(7))

	profit, err := playSplit(Hand{PlayerTotal: 22, DealerUpcard: cards.Ten, Pair: true}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 2.0, profit)
}

func TestPlaySplitNonAceDrawsToElevenAndStiffRule(t *testing.T) {
	// Split fives against a six, shoe of twos: 5+2=7 draws again (<=11) to 9
	// and stands there. Dealer: 6 up + 2 + 2 + 2 + 2 + 2 = 16, then 2 = 18.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Two: 40})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(3))

	profit, err := playSplit(Hand{PlayerTotal: 10, DealerUpcard: cards.Six, Pair: true}, &deck, rng)
	require.NoError(t, err)

	// Both hands finish on 9 against dealer 18.
	assert.Equal(t, -2.0, profit)
	// Each hand drew two cards; dealer drew hole + five hits.
	assert.Equal(t, snap.Remaining-10, deck.remaining)
}

func TestPlaySplitStiffStandsAgainstWeakUpcard(t *testing.T) {
	// Split sevens v 6, shoe of eights: 7+8=15 stands against a 6 per the
	// stiff rule. Dealer: 6 + 8 + 8 = 22, bust; both hands win.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Eight: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(9))

	profit, err := playSplit(Hand{PlayerTotal: 14, DealerUpcard: cards.Six, Pair: true}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 2.0, profit)
	assert.Equal(t, snap.Remaining-4, deck.remaining)
}

func TestPlayHitBustsImmediately(t *testing.T) {
	snap := riggedSnapshot(map[cards.Rank]int{cards.King: 10})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(5))

	profit, err := playHit(Hand{PlayerTotal: 16, DealerUpcard: cards.Ten}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, -1.0, profit)
	// Bust settles without a dealer draw.
	assert.Equal(t, snap.Remaining-1, deck.remaining)
}

func TestPlayHitHardStandsAboveEleven(t *testing.T) {
	// Hard 8 draws a 4 for 12 and stands (hard continuation stops above 11).
	// Dealer: 10 up + 4 hole = 14, one hit = 18. Player loses.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Four: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(6))

	profit, err := playHit(Hand{PlayerTotal: 8, DealerUpcard: cards.Ten}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, -1.0, profit)
	assert.Equal(t, snap.Remaining-3, deck.remaining)
}

func TestPlayHitSoftKeepsHittingThroughSoft18(t *testing.T) {
	// All aces: soft 17 hits to soft 18, policy hits soft 18 again to soft
	// 19, then stands. Dealer holds 10 up + ace hole = 21.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Ace: 30})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(8))

	profit, err := playHit(Hand{PlayerTotal: 17, DealerUpcard: cards.Ten, Soft: true}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, -1.0, profit)
}

func TestPlayDoubleDrawsExactlyOneCard(t *testing.T) {
	// Hard 11 doubles into a ten for 21; dealer 10 + 10 = 20. Win at 2x.
	snap := riggedSnapshot(map[cards.Rank]int{cards.Ten: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(2))

	profit, err := playDouble(Hand{PlayerTotal: 11, DealerUpcard: cards.Ten}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, 2.0, profit)
	// One player card + dealer hole only.
	assert.Equal(t, snap.Remaining-2, deck.remaining)
}

func TestPlayDoubleBustLosesDouble(t *testing.T) {
	snap := riggedSnapshot(map[cards.Rank]int{cards.King: 20})
	deck := newWorkingDeck(snap)
	rng := rand.New(rand.NewSource(2))

	profit, err := playDouble(Hand{PlayerTotal: 12, DealerUpcard: cards.Ten}, &deck, rng)
	require.NoError(t, err)
	assert.Equal(t, -2.0, profit)
	assert.Equal(t, snap.Remaining-1, deck.remaining)
}
