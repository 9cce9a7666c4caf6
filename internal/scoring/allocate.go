// Package scoring implements the computation engine for handicapped net
// match-play golf: handicap stroke allocation, per-hole net scoring,
// bonus classification, foursome decomposition, the match lifecycle, and
// tournament standings aggregation.
//
// Everything in this package is a pure transformation over in-memory
// values. It performs no I/O and holds no state — the HTTP handlers own
// persistence and pass fully loaded records in. That keeps the match-play
// arithmetic trivially testable and lets callers recompute results
// idempotently: the same inputs always produce the same outputs.
package scoring

import (
	"math"
	"sort"
)

// CourseHole is read-only reference data for one hole on a tee:
// its number on the card, its par, and its stroke index.
// Stroke index ranks hole difficulty for handicap purposes — index 1 is
// the hardest hole and receives the first allocated stroke.
type CourseHole struct {
	Number      int // Hole number as printed on the scorecard (1–18)
	Par         int // Expected strokes for this hole
	StrokeIndex int // Difficulty rank, 1 = hardest; unique within a tee's hole set
}

// AllocateStrokes distributes a handicap-stroke differential across the
// given holes and returns a map of hole number to strokes received.
//
// The differential is the disadvantaged side's handicap minus the
// advantaged side's, so it is always non-negative; the caller decides
// which side the resulting map applies to. For 18-hole matches the
// differential is a whole number. For 9-hole matches the caller halves
// it first (see BuildScorecard), which can leave a 0.5 remainder.
//
// Every hole gets floor(differential / len(holes)) strokes. The
// remaining whole strokes go one per hole to the lowest stroke indexes
// (hardest holes first, ties broken by lower hole number), and a
// trailing half stroke lands on the hardest hole still unserved.
//
// The returned values sum to the differential exactly. An empty hole
// list yields an empty map.
func AllocateStrokes(differential float64, holes []CourseHole) map[int]float64 {
	allocation := make(map[int]float64, len(holes))
	if len(holes) == 0 {
		return allocation
	}

	base := math.Floor(differential / float64(len(holes)))
	for _, hole := range holes {
		allocation[hole.Number] = base
	}

	remainder := differential - base*float64(len(holes))
	if remainder <= 0 {
		return allocation
	}

	// Hardest holes first; lower hole number wins a stroke-index tie.
	byDifficulty := make([]CourseHole, len(holes))
	copy(byDifficulty, holes)
	sort.Slice(byDifficulty, func(i, j int) bool {
		if byDifficulty[i].StrokeIndex != byDifficulty[j].StrokeIndex {
			return byDifficulty[i].StrokeIndex < byDifficulty[j].StrokeIndex
		}
		return byDifficulty[i].Number < byDifficulty[j].Number
	})

	for _, hole := range byDifficulty {
		if remainder >= 1 {
			allocation[hole.Number]++
			remainder--
			continue
		}
		if remainder > 0 {
			// The final half stroke goes to the hardest remaining hole.
			allocation[hole.Number] += 0.5
		}
		break
	}
	return allocation
}
