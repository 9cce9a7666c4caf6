package scoring

// Player is the roster entry the engine works with: identity plus the
// handicap and ordering data the computations need. Persistence IDs are
// the caller's concern.
type Player struct {
	Name     string
	Division string
	Handicap int // Integer course handicap
	Seed     int // Tie-break ordering within a division
}

// Pairing is a scheduled match. Players A and B always form the primary
// singles match; when C and D are both present the group is a foursome
// and a second, fully independent singles match C-vs-D rides on the
// same scorecard.
type Pairing struct {
	MatchKey  string
	Division  string
	PlayerA   Player
	PlayerB   Player
	PlayerC   *Player
	PlayerD   *Player
	HoleCount int // 9 or 18
	StartHole int // 1, or 10 for a back-nine start
}

// GroupScore is one submitted hole record for a pairing, carrying up to
// four gross scores — one per player slot. Slots the group hasn't
// scored yet are nil.
type GroupScore struct {
	HoleNumber int
	GrossA     *int
	GrossB     *int
	GrossC     *int
	GrossD     *int
}

// SinglesInput is everything BuildScorecard needs for one singles
// match, carved out of a pairing's shared context.
type SinglesInput struct {
	MatchKey  string
	Division  string
	PlayerA   Player
	PlayerB   Player
	Scores    []HoleScore
	HoleCount int
	StartHole int
}

// PairedSingles is the decomposed form of a pairing: the A-vs-B match,
// and the C-vs-D match when the pairing is a foursome. Modeling the
// coupling structurally (rather than by key-suffix convention) is what
// guarantees the two sub-matches can never drift apart on hole count,
// start hole, or course context — they are stamped from the same
// pairing in one call.
type PairedSingles struct {
	AB SinglesInput
	CD *SinglesInput
}

// cdKeySuffix distinguishes the C/D result row from the A/B row when
// both are stored under the pairing's match key.
const cdKeySuffix = "-cd"

// CDMatchKey returns the stored result key for a foursome's second
// singles match.
func CDMatchKey(matchKey string) string {
	return matchKey + cdKeySuffix
}

// SplitFoursome fans a pairing's shared hole records out into one or
// two singles-match inputs. The A/B match always exists. The C/D match
// exists only when both slots are filled, and reuses the identical hole
// numbers, match length, and start hole — only the handicaps and the
// gross-score slots differ.
//
// Hole records routinely carry A/B scores without C/D scores (or the
// reverse) mid-round; the missing slots surface as nil grosses and the
// affected sub-match simply reports those holes as unresolved.
func SplitFoursome(pairing Pairing, scores []GroupScore) PairedSingles {
	ab := SinglesInput{
		MatchKey:  pairing.MatchKey,
		Division:  pairing.Division,
		PlayerA:   pairing.PlayerA,
		PlayerB:   pairing.PlayerB,
		Scores:    make([]HoleScore, 0, len(scores)),
		HoleCount: pairing.HoleCount,
		StartHole: pairing.StartHole,
	}
	for _, score := range scores {
		ab.Scores = append(ab.Scores, HoleScore{
			HoleNumber: score.HoleNumber,
			GrossA:     score.GrossA,
			GrossB:     score.GrossB,
		})
	}

	split := PairedSingles{AB: ab}
	if pairing.PlayerC == nil || pairing.PlayerD == nil {
		return split
	}

	cd := SinglesInput{
		MatchKey:  CDMatchKey(pairing.MatchKey),
		Division:  pairing.Division,
		PlayerA:   *pairing.PlayerC,
		PlayerB:   *pairing.PlayerD,
		Scores:    make([]HoleScore, 0, len(scores)),
		HoleCount: pairing.HoleCount,
		StartHole: pairing.StartHole,
	}
	for _, score := range scores {
		cd.Scores = append(cd.Scores, HoleScore{
			HoleNumber: score.HoleNumber,
			GrossA:     score.GrossC,
			GrossB:     score.GrossD,
		})
	}
	split.CD = &cd
	return split
}
