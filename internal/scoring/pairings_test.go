package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPairings_RoundRobinPerDivision(t *testing.T) {
	pairings := BuildPairings(testRoster())

	// Division A has 3 players (3 matches); division B has 2 (1 match).
	require.Len(t, pairings, 4)
	assert.Equal(t, "A-01", pairings[0].MatchKey)
	assert.Equal(t, "A-02", pairings[1].MatchKey)
	assert.Equal(t, "A-03", pairings[2].MatchKey)
	assert.Equal(t, "B-01", pairings[3].MatchKey)
}

func TestBuildPairings_SeedOrderDecidesOpponentOrder(t *testing.T) {
	roster := []Player{
		{Name: "Zoe", Division: "A", Seed: 1},
		{Name: "Amy", Division: "A", Seed: 2},
		{Name: "Mia", Division: "A", Seed: 3},
	}

	pairings := BuildPairings(roster)

	require.Len(t, pairings, 3)
	assert.Equal(t, "Zoe", pairings[0].PlayerA.Name)
	assert.Equal(t, "Amy", pairings[0].PlayerB.Name)
	assert.Equal(t, "Zoe", pairings[1].PlayerA.Name)
	assert.Equal(t, "Mia", pairings[1].PlayerB.Name)
	assert.Equal(t, "Amy", pairings[2].PlayerA.Name)
}

func TestMatchDisplay(t *testing.T) {
	pairing := Pairing{
		Division: "A",
		PlayerA:  Player{Name: "Alice"},
		PlayerB:  Player{Name: "Bob"},
	}
	assert.Equal(t, "Division A: Alice vs Bob", MatchDisplay(pairing))
}

func TestFindPairing(t *testing.T) {
	pairings := BuildPairings(testRoster())

	found := FindPairing("A-02", pairings)
	require.NotNil(t, found)
	assert.Equal(t, "A-02", found.MatchKey)

	assert.Nil(t, FindPairing("", pairings))
	assert.Nil(t, FindPairing("Z-99", pairings))
}
