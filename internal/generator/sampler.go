package generator

// ============================================================================
// Samplers
// Responsibility: status transitions, interval durations, punch sources
// ============================================================================
//
// Status transitions (no self loops):
//
//   OFF(1)     → WORKING(2)              100%
//   WORKING(2) → OFF(1) 80% | BREAK(3) 20%
//   BREAK(3)   → WORKING(2) 80% | OFF(1) 20%
//
// A continuation of a month split repeats the split record's status.
//
// Durations (minutes, uniform) plus 0..59 seconds:
//
//   OFF      240 .. 2880
//   WORKING   30 .. 480
//   BREAK     10 .. 90
//
// ============================================================================

import (
	"math/rand/v2"
	"time"

	"github.com/ChuLiYu/attgen/pkg/types"
)

// Rand random source used by every sampler. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG source seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// weighted value with a relative weight
type weighted[T any] struct {
	value  T
	weight int
}

// intBetween returns a uniform integer in [lo, hi]
func intBetween(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// choose picks one value proportionally to its weight
func choose[T any](r Rand, choices []weighted[T]) T {
	total := 0
	for _, c := range choices {
		total += c.weight
	}
	n := r.IntN(total)
	for _, c := range choices {
		if n < c.weight {
			return c.value
		}
		n -= c.weight
	}
	return choices[len(choices)-1].value
}

var (
	fromWorking = []weighted[types.StatusID]{{types.StatusOff, 80}, {types.StatusBreak, 20}}
	fromBreak   = []weighted[types.StatusID]{{types.StatusWorking, 80}, {types.StatusOff, 20}}

	sourceWeights = []weighted[types.SourceID]{
		{types.SourceWeb, 10},
		{types.SourceDiscord, 70},
		{types.SourceNFC, 10},
		{types.SourceAdmin, 10},
	}
)

// NextStatus returns the status of the record following prev.
// prev is zero for the first record. prevSplit marks prev as cut at a month
// end, in which case the status carries over unchanged.
func NextStatus(r Rand, prev types.StatusID, prevSplit bool) types.StatusID {
	if prevSplit && prev != 0 {
		return prev
	}
	switch prev {
	case 0:
		return types.StatusOff
	case types.StatusOff:
		return types.StatusWorking
	case types.StatusWorking:
		return choose(r, fromWorking)
	default:
		return choose(r, fromBreak)
	}
}

// durationRange minute bounds per status
type durationRange struct {
	minMinutes, maxMinutes int
}

var durations = map[types.StatusID]durationRange{
	types.StatusOff:     {240, 2880},
	types.StatusWorking: {30, 480},
	types.StatusBreak:   {10, 90},
}

// SampleDuration draws the length of an interval with the given status
func SampleDuration(r Rand, status types.StatusID) time.Duration {
	rng, ok := durations[status]
	if !ok {
		rng = durations[types.StatusBreak]
	}
	minutes := intBetween(r, rng.minMinutes, rng.maxMinutes)
	seconds := intBetween(r, 0, 59)
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// SampleSource draws a punch source, DISCORD 70% and the others 10% each
func SampleSource(r Rand) types.SourceID {
	return choose(r, sourceWeights)
}

// sampleMicros draws a sub-second offset in [0, 999999] microseconds
func sampleMicros(r Rand) int {
	return intBetween(r, 0, 999999)
}
