package simulation

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"math/rand"
	"runtime"
	"sync"

	"shoe-advisor/strategy"
)

const (
	// DefaultTrials per action; Monte Carlo precision scales as 1/sqrt(n).
	DefaultTrials = 30000

	// Trials are simulated in fixed chunks, each with its own seeded RNG, so
	// the result is bit-identical for any worker count.
	chunkSize = 1024

	defaultBaseSeed = 12345
)

// ErrUpcardUnavailable means the caller supplied a dealer upcard of which the
// real shoe holds zero copies.
var ErrUpcardUnavailable = errors.New("dealer upcard not present in shoe")

// Simulator estimates the expected value of each legal action by playing out
// independent trials against private clones of a shoe snapshot.
//
// The continuation policies inside Hit and Split trials are fixed simplified
// heuristics carried over from the chart-driven play model, not a full
// game-tree search; the EVs carry that approximation.
type Simulator struct {
	Trials   int   // trials per action; DefaultTrials when <= 0
	Workers  int   // concurrent workers; GOMAXPROCS when <= 0
	BaseSeed int64 // RNG seed base; a fixed default when 0
}

// Result is the per-action EV estimate plus the recommended action.
type Result struct {
	EVs       map[strategy.Action]float64
	Best      strategy.Action
	Trials    int
	Completed map[strategy.Action]int
	Aborted   int
}

// EligibleActions enumerates the legal actions for a hand under the modeled
// rules, in the fixed order used for EV tie-breaking: Hit and Stand always;
// Double on hard 9-11 or soft 13-18, never on a pair; Split on any pair.
func EligibleActions(hand Hand) []strategy.Action {
	hand = hand.normalized()

	actions := []strategy.Action{strategy.Stand, strategy.Hit}
	if !hand.Pair {
		hardDouble := !hand.Soft && hand.PlayerTotal >= 9 && hand.PlayerTotal <= 11
		softDouble := hand.Soft && hand.PlayerTotal >= 13 && hand.PlayerTotal <= 18
		if hardDouble || softDouble {
			actions = append(actions, strategy.Double)
		}
	}
	if hand.Pair {
		actions = append(actions, strategy.Split)
	}
	return actions
}

// Evaluate runs the configured number of trials for every eligible action
// against the snapshot and returns the EV of each, per unit of the original
// bet, plus the highest-EV action. Ties break toward the earlier action in
// enumeration order.
func (s *Simulator) Evaluate(snap Snapshot, hand Hand) (Result, error) {
	hand = hand.normalized()
	if err := hand.validate(); err != nil {
		return Result{}, err
	}
	if snap.Counts[hand.DealerUpcard.Index()] <= 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrUpcardUnavailable, hand.DealerUpcard)
	}

	trials := s.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}

	result := Result{
		EVs:       make(map[strategy.Action]float64),
		Completed: make(map[strategy.Action]int),
		Trials:    trials,
	}

	actions := EligibleActions(hand)
	for _, action := range actions {
		ev, completed, aborted := s.simulateAction(snap, hand, action, trials)
		result.EVs[action] = ev
		result.Completed[action] = completed
		result.Aborted += aborted
	}

	if result.Aborted > 0 {
		log.Printf("simulation: %d trials aborted on an exhausted working deck", result.Aborted)
	}

	best := actions[0]
	for _, action := range actions[1:] {
		if result.EVs[action] > result.EVs[best] {
			best = action
		}
	}
	result.Best = best

	return result, nil
}

func (s *Simulator) simulateAction(snap Snapshot, hand Hand, action strategy.Action, trials int) (ev float64, completed, aborted int) {
	seed := actionSeed(s.BaseSeed, hand, action)

	numChunks := (trials + chunkSize - 1) / chunkSize
	type chunkResult struct {
		profit    float64
		completed int
		aborted   int
	}
	results := make([]chunkResult, numChunks)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numChunks {
		workers = numChunks
	}

	chunks := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunks {
				n := chunkSize
				if c == numChunks-1 {
					n = trials - c*chunkSize
				}

				// Each chunk owns an independent pseudo-random stream.
				rng := rand.New(rand.NewSource(seed + int64(c)*0x9E3779B9))

				var res chunkResult
				for i := 0; i < n; i++ {
					profit, err := runTrial(snap, hand, action, rng)
					if err != nil {
						res.aborted++
						continue
					}
					res.profit += profit
					res.completed++
				}
				results[c] = res
			}
		}()
	}
	for c := 0; c < numChunks; c++ {
		chunks <- c
	}
	close(chunks)
	wg.Wait()

	// Reduce in chunk order so the float sum is reproducible.
	var profit float64
	for _, r := range results {
		profit += r.profit
		completed += r.completed
		aborted += r.aborted
	}
	if completed == 0 {
		return 0, 0, aborted
	}
	return profit / float64(completed), completed, aborted
}

func runTrial(snap Snapshot, hand Hand, action strategy.Action, rng *rand.Rand) (float64, error) {
	deck := newWorkingDeck(snap)

	// The upcard is face-up on the table already; it is not part of the
	// unseen population the trial samples from.
	if !deck.remove(hand.DealerUpcard) {
		return 0, ErrDeckExhausted
	}

	switch action {
	case strategy.Stand:
		return playStand(hand, &deck, rng)
	case strategy.Hit:
		return playHit(hand, &deck, rng)
	case strategy.Double:
		return playDouble(hand, &deck, rng)
	case strategy.Split:
		return playSplit(hand, &deck, rng)
	}
	return 0, fmt.Errorf("unsupported action %q", action)
}

// actionSeed derives a deterministic seed from the hand, the action, and the
// simulator's base seed, so repeated evaluations of the same question reuse
// the same random streams.
func actionSeed(base int64, hand Hand, action strategy.Action) int64 {
	if base == 0 {
		base = defaultBaseSeed
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%t|%t|%s", hand.PlayerTotal, hand.DealerUpcard, hand.Soft, hand.Pair, action)
	return int64(h.Sum64()) ^ base
}
