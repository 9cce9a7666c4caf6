package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foursomePairing() Pairing {
	return Pairing{
		MatchKey:  "A-01",
		Division:  "A",
		PlayerA:   Player{Name: "Alice", Division: "A", Handicap: 10},
		PlayerB:   Player{Name: "Bob", Division: "A", Handicap: 8},
		PlayerC:   &Player{Name: "Carol", Division: "A", Handicap: 14},
		PlayerD:   &Player{Name: "Dave", Division: "A", Handicap: 6},
		HoleCount: 18,
		StartHole: 1,
	}
}

func TestSplitFoursome_TwoPlayerPairingIsSingleMatch(t *testing.T) {
	pairing := foursomePairing()
	pairing.PlayerC = nil
	pairing.PlayerD = nil

	split := SplitFoursome(pairing, []GroupScore{
		{HoleNumber: 1, GrossA: gross(4), GrossB: gross(5)},
	})

	assert.Nil(t, split.CD)
	assert.Equal(t, "A-01", split.AB.MatchKey)
	require.Len(t, split.AB.Scores, 1)
	assert.Equal(t, 4, *split.AB.Scores[0].GrossA)
}

func TestSplitFoursome_SharedContextStampedOnBothMatches(t *testing.T) {
	pairing := foursomePairing()
	pairing.HoleCount = 9
	pairing.StartHole = 10

	split := SplitFoursome(pairing, nil)

	require.NotNil(t, split.CD)
	assert.Equal(t, "A-01", split.AB.MatchKey)
	assert.Equal(t, "A-01-cd", split.CD.MatchKey)
	assert.Equal(t, split.AB.HoleCount, split.CD.HoleCount)
	assert.Equal(t, split.AB.StartHole, split.CD.StartHole)
	assert.Equal(t, split.AB.Division, split.CD.Division)
	assert.Equal(t, "Carol", split.CD.PlayerA.Name)
	assert.Equal(t, "Dave", split.CD.PlayerB.Name)
}

func TestSplitFoursome_SlotsRouteToTheRightMatch(t *testing.T) {
	split := SplitFoursome(foursomePairing(), []GroupScore{
		{HoleNumber: 1, GrossA: gross(4), GrossB: gross(5), GrossC: gross(6), GrossD: gross(3)},
	})

	require.NotNil(t, split.CD)
	assert.Equal(t, 4, *split.AB.Scores[0].GrossA)
	assert.Equal(t, 5, *split.AB.Scores[0].GrossB)
	assert.Equal(t, 6, *split.CD.Scores[0].GrossA)
	assert.Equal(t, 3, *split.CD.Scores[0].GrossB)
}

// Only the A/B slots have been scored so far: the AB card resolves
// holes while the CD card reports every hole open until C/D data lands.
func TestSplitFoursome_ABScoresAloneLeaveCDUnresolved(t *testing.T) {
	pairing := foursomePairing()
	holes := sequentialHoles(18)

	scores := make([]GroupScore, 0, 18)
	for i := 1; i <= 18; i++ {
		scores = append(scores, GroupScore{HoleNumber: i, GrossA: gross(4), GrossB: gross(5)})
	}
	split := SplitFoursome(pairing, scores)
	require.NotNil(t, split.CD)

	abCard := BuildScorecard(split.AB.Scores, pairing.PlayerA.Handicap, pairing.PlayerB.Handicap, holes, 18, 1)
	cdCard := BuildScorecard(split.CD.Scores, split.CD.PlayerA.Handicap, split.CD.PlayerB.Handicap, holes, 18, 1)

	assert.Equal(t, 18, abCard.Meta.HolesRecorded)
	assert.Equal(t, 18.0, abCard.Meta.PointsA+abCard.Meta.PointsB)

	assert.Equal(t, 0, cdCard.Meta.HolesRecorded)
	assert.Equal(t, 0.0, cdCard.Meta.PointsA)
	assert.Equal(t, 0.0, cdCard.Meta.PointsB)
	for _, row := range cdCard.Rows {
		assert.Equal(t, HoleOpen, row.Result)
	}
}
