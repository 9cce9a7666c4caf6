package scoring

// Winner identifies which side won a singles match, or "T" for a tie.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "T"
)

// BonusOverride is a manually entered bonus correction. When supplied it
// replaces the computed bonus for both sides — but only if the match is
// bonus-eligible; an override on an ineligible match is ignored so a
// mid-round correction can never award premature bonus points.
type BonusOverride struct {
	A float64
	B float64
}

// Outcome is the classified result of a singles match: raw points,
// bonus, grand totals, and the winner code.
type Outcome struct {
	PointsA       float64 `json:"player_a_points"`
	PointsB       float64 `json:"player_b_points"`
	BonusA        float64 `json:"player_a_bonus"`
	BonusB        float64 `json:"player_b_bonus"`
	TotalA        float64 `json:"player_a_total"`
	TotalB        float64 `json:"player_b_total"`
	Winner        Winner  `json:"winner"`
	BonusEligible bool    `json:"bonus_eligible"`
}

// ClassifyOutcome converts raw point totals into the final match result
// under the tournament's bonus rule.
//
// The winner is whichever side has strictly more points; equal points is
// a tie. Bonus points are only in play once the match is bonus-eligible:
// recordedHoles has reached matchLength, or sits on a recognized
// milestone (9 or 18). Before that, both bonuses are forced to zero no
// matter what the point totals say. When eligible, a side with 5 or
// more points earns a 1.0 bonus, and a 4.5–4.5 tie pays 0.5 to each
// side. Totals are points plus bonus.
func ClassifyOutcome(pointsA, pointsB float64, recordedHoles, matchLength int, override *BonusOverride) Outcome {
	outcome := Outcome{
		PointsA: pointsA,
		PointsB: pointsB,
	}

	switch {
	case pointsA > pointsB:
		outcome.Winner = WinnerA
	case pointsB > pointsA:
		outcome.Winner = WinnerB
	default:
		outcome.Winner = WinnerTie
	}

	outcome.BonusEligible = bonusEligible(recordedHoles, matchLength)
	if outcome.BonusEligible {
		if outcome.Winner == WinnerTie && pointsA == 4.5 {
			outcome.BonusA = 0.5
			outcome.BonusB = 0.5
		}
		if pointsA >= 5 {
			outcome.BonusA = 1
		}
		if pointsB >= 5 {
			outcome.BonusB = 1
		}
		if override != nil {
			outcome.BonusA = override.A
			outcome.BonusB = override.B
		}
	}

	outcome.TotalA = pointsA + outcome.BonusA
	outcome.TotalB = pointsB + outcome.BonusB
	return outcome
}

// bonusEligible is the single home of the eligibility rule so it cannot
// drift between call sites: a full card, or exactly a 9- or 18-hole
// milestone, unlocks the bonus.
func bonusEligible(recordedHoles, matchLength int) bool {
	if recordedHoles <= 0 {
		return false
	}
	return recordedHoles >= matchLength || recordedHoles == 9 || recordedHoles == 18
}
