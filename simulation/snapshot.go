package simulation

import (
	"shoe-advisor/cards"
	"shoe-advisor/domain"
)

// Snapshot is the baseline shoe composition an evaluation runs against.
// Every trial clones it into a private working deck, so nothing a trial does
// can leak into the live shoe or into other trials.
type Snapshot struct {
	Counts    [cards.NumRanks]int
	Remaining int
}

// SnapshotShoe captures the shoe's composition atomically (under the shoe's
// read lock, so a concurrent DealCard is never observed half-applied).
func SnapshotShoe(shoe *domain.Shoe) Snapshot {
	counts, remaining := shoe.CompositionArray()
	return Snapshot{Counts: counts, Remaining: remaining}
}
