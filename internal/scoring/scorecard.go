package scoring

import (
	"math"
	"sort"
)

// Side identifies one side of a singles match on the shared scorecard.
type Side string

const (
	SideA    Side = "A" // The first-listed player
	SideB    Side = "B" // The second-listed player
	SideNone Side = ""  // Neither side (e.g. no stroke advantage when handicaps are equal)
)

// HoleResult is the outcome of a single hole.
type HoleResult string

const (
	HoleWonA   HoleResult = "A" // Side A's net score was lower
	HoleWonB   HoleResult = "B" // Side B's net score was lower
	HoleHalved HoleResult = "H" // Net scores were equal; half a point each
	HoleOpen   HoleResult = ""  // One or both gross scores are missing — no result yet
)

// HoleScore is one submitted gross-score record for a singles match.
// A nil gross means that side has not recorded a score on the hole yet;
// the hole simply contributes no points until both sides have played it.
type HoleScore struct {
	HoleNumber int
	GrossA     *int
	GrossB     *int
}

// ScorecardRow is one derived line of a match scorecard: the hole's
// reference data, the strokes each side receives there, both net scores,
// and the match-play result of the hole.
type ScorecardRow struct {
	HoleNumber  int        `json:"hole_number"`
	Par         int        `json:"par"`
	StrokeIndex int        `json:"stroke_index"`
	StrokesA    float64    `json:"strokes_a"`
	StrokesB    float64    `json:"strokes_b"`
	GrossA      *int       `json:"gross_a"`
	GrossB      *int       `json:"gross_b"`
	NetA        *float64   `json:"net_a"`
	NetB        *float64   `json:"net_b"`
	Result      HoleResult `json:"result"`
	PointsA     float64    `json:"points_a"`
	PointsB     float64    `json:"points_b"`
}

// ScorecardMeta summarizes a built scorecard.
type ScorecardMeta struct {
	StrokeSide    Side    `json:"stroke_side"`    // Which side receives strokes; SideNone when handicaps are equal
	StrokesGiven  float64 `json:"strokes_given"`  // Total strokes allocated to the disadvantaged side
	NineHole      bool    `json:"nine_hole"`      // True for a 9-hole match (half-handicap allowance)
	StartHole     int     `json:"start_hole"`     // The resolved first hole of the active subset
	PointsA       float64 `json:"points_a"`       // Running point total for side A
	PointsB       float64 `json:"points_b"`       // Running point total for side B
	HolesRecorded int     `json:"holes_recorded"` // How many active holes have at least one gross score
}

// Scorecard is the full derived card for one singles match: one row per
// active hole plus the course subset it was built from and the summary.
type Scorecard struct {
	Rows        []ScorecardRow `json:"rows"`
	ActiveHoles []CourseHole   `json:"active_holes"`
	Meta        ScorecardMeta  `json:"meta"`
}

// BuildScorecard computes the scorecard for a singles match from raw
// gross scores and the course's hole list.
//
// The active holes are selected by walking the course holes (sorted by
// hole number) circularly from startHole until matchLength holes are
// collected — this is what makes a back-nine 9-hole match (start hole
// 10) work against an 18-hole card. The handicap differential
// |handicapA − handicapB| is allocated across those holes; for a 9-hole
// match the differential is first halved and rounded to the nearest 0.5,
// reflecting that a half-length match carries half the strokes.
//
// Per hole: net = gross − allocated strokes. The lower net wins the hole
// for 1 point, equal nets halve it for 0.5 each, and a hole missing
// either gross score contributes nothing. Score records whose hole
// number is outside the active subset are ignored rather than rejected,
// so partial or sloppy submissions degrade gracefully.
//
// The function never mutates its inputs.
func BuildScorecard(scores []HoleScore, handicapA, handicapB int, courseHoles []CourseHole, matchLength, startHole int) Scorecard {
	active := activeHoles(courseHoles, matchLength, startHole)

	strokeSide := SideNone
	if handicapA > handicapB {
		strokeSide = SideA
	} else if handicapB > handicapA {
		strokeSide = SideB
	}

	differential := math.Abs(float64(handicapA - handicapB))
	nineHole := matchLength == 9
	if nineHole {
		// Half allowance for a half-length match, kept on the 0.5 grid.
		differential = math.Round(differential) / 2
	}
	allocation := AllocateStrokes(differential, active)

	// Last submission for a hole wins, matching how the store upserts.
	scoreByHole := make(map[int]HoleScore, len(scores))
	for _, score := range scores {
		scoreByHole[score.HoleNumber] = score
	}

	resolvedStart := startHole
	if len(active) > 0 {
		resolvedStart = active[0].Number
	}
	meta := ScorecardMeta{
		StrokeSide:   strokeSide,
		StrokesGiven: differential,
		NineHole:     nineHole,
		StartHole:    resolvedStart,
	}

	rows := make([]ScorecardRow, 0, len(active))
	for _, hole := range active {
		strokes := allocation[hole.Number]
		row := ScorecardRow{
			HoleNumber:  hole.Number,
			Par:         hole.Par,
			StrokeIndex: hole.StrokeIndex,
		}
		switch strokeSide {
		case SideA:
			row.StrokesA = strokes
		case SideB:
			row.StrokesB = strokes
		}

		score, recorded := scoreByHole[hole.Number]
		if recorded && (score.GrossA != nil || score.GrossB != nil) {
			meta.HolesRecorded++
		}
		if recorded && score.GrossA != nil {
			row.GrossA = score.GrossA
			net := float64(*score.GrossA) - row.StrokesA
			row.NetA = &net
		}
		if recorded && score.GrossB != nil {
			row.GrossB = score.GrossB
			net := float64(*score.GrossB) - row.StrokesB
			row.NetB = &net
		}

		if row.NetA != nil && row.NetB != nil {
			switch {
			case *row.NetA < *row.NetB:
				row.Result = HoleWonA
				row.PointsA = 1
			case *row.NetB < *row.NetA:
				row.Result = HoleWonB
				row.PointsB = 1
			default:
				row.Result = HoleHalved
				row.PointsA = 0.5
				row.PointsB = 0.5
			}
		}
		meta.PointsA += row.PointsA
		meta.PointsB += row.PointsB
		rows = append(rows, row)
	}

	return Scorecard{Rows: rows, ActiveHoles: active, Meta: meta}
}

// activeHoles returns matchLength holes starting at startHole, walking
// the card circularly so a match can begin on the back nine. The walk is
// capped at one full lap — no hole ever appears twice.
func activeHoles(courseHoles []CourseHole, matchLength, startHole int) []CourseHole {
	if len(courseHoles) == 0 || matchLength <= 0 {
		return nil
	}

	ordered := make([]CourseHole, len(courseHoles))
	copy(ordered, courseHoles)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	start := 0
	for i, hole := range ordered {
		if hole.Number >= startHole {
			start = i
			break
		}
	}

	count := matchLength
	if count > len(ordered) {
		count = len(ordered)
	}
	active := make([]CourseHole, 0, count)
	for i := 0; i < count; i++ {
		active = append(active, ordered[(start+i)%len(ordered)])
	}
	return active
}
