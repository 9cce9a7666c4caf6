package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []Player {
	return []Player{
		{Name: "Alice", Division: "A", Handicap: 10, Seed: 1},
		{Name: "Bob", Division: "A", Handicap: 8, Seed: 2},
		{Name: "Carol", Division: "A", Handicap: 14, Seed: 3},
		{Name: "Dana", Division: "B", Handicap: 6, Seed: 1},
		{Name: "Evan", Division: "B", Handicap: 4, Seed: 2},
	}
}

// fullCard returns 18 hole records in which A wins winsA holes, B wins
// winsB, and the rest halve (no handicap strokes assumed).
func fullCard(winsA, winsB int) []HoleScore {
	scores := make([]HoleScore, 0, 18)
	for i := 1; i <= 18; i++ {
		a, b := 4, 4
		if i <= winsA {
			a = 3
		} else if i <= winsA+winsB {
			b = 3
		}
		scores = append(scores, HoleScore{HoleNumber: i, GrossA: gross(a), GrossB: gross(b)})
	}
	return scores
}

func TestAggregateStandings_RecomputesFromRawHoles(t *testing.T) {
	holes := sequentialHoles(18)
	results := []MatchResultInput{
		{
			MatchKey:    "A-01",
			PlayerAName: "Alice",
			PlayerBName: "Bob",
			HoleCount:   18,
			StartHole:   1,
			CourseHoles: holes,
			Scores:      fullCard(12, 6),
			// Stale stored totals that must be ignored for a live match.
			StoredTotalA: 1,
			StoredTotalB: 17,
			StoredWinner: WinnerB,
		},
	}

	standings := AggregateStandings(results, testRoster())

	require.Len(t, standings, 2)
	divisionA := standings[0]
	assert.Equal(t, "A", divisionA.Division)
	alice := divisionA.Players[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 1, alice.Wins)
	// 12 points + 1.0 bonus for reaching five.
	assert.Equal(t, 13.0, alice.PointsFor)
	assert.Equal(t, 6.0, alice.PointsAgainst)
	assert.Equal(t, 7.0, alice.PointDiff)
	assert.Equal(t, 18, alice.HolesPlayed)
}

func TestAggregateStandings_FinalizedMatchUsesSnapshot(t *testing.T) {
	holes := sequentialHoles(18)
	card := BuildScorecard(fullCard(10, 8), 0, 0, holes, 18, 1)
	snapshot, err := FinalizeScorecard(card, nil)
	require.NoError(t, err)

	results := []MatchResultInput{
		{
			MatchKey:    "A-01",
			PlayerAName: "Alice",
			PlayerBName: "Bob",
			HoleCount:   18,
			StartHole:   1,
			CourseHoles: holes,
			// Live records now disagree with the snapshot — they must lose.
			Scores:    fullCard(0, 18),
			Finalized: true,
			Snapshot:  snapshot,
		},
	}

	standings := AggregateStandings(results, testRoster())

	alice := standings[0].Players[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 11.0, alice.PointsFor, "snapshot totals, not live recompute")
}

func TestAggregateStandings_UnplayedMatchesSkipped(t *testing.T) {
	results := []MatchResultInput{
		{MatchKey: "A-01", PlayerAName: "Alice", PlayerBName: "Bob", HoleCount: 18, StartHole: 1, CourseHoles: sequentialHoles(18)},
	}

	standings := AggregateStandings(results, testRoster())

	for _, division := range standings {
		for _, entry := range division.Players {
			assert.Equal(t, 0, entry.Matches, "%s should have no matches", entry.Name)
		}
	}
}

func TestAggregateStandings_LegacyTotalsStillCount(t *testing.T) {
	results := []MatchResultInput{
		{
			MatchKey:     "A-01",
			PlayerAName:  "Alice",
			PlayerBName:  "Bob",
			HoleCount:    18,
			StoredTotalA: 7,
			StoredTotalB: 4,
			StoredWinner: WinnerA,
		},
	}

	standings := AggregateStandings(results, testRoster())

	alice := standings[0].Players[0]
	assert.Equal(t, 7.0, alice.PointsFor)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 0, alice.HolesPlayed)
}

func TestAggregateStandings_EveryRosteredPlayerGetsARow(t *testing.T) {
	standings := AggregateStandings(nil, testRoster())

	require.Len(t, standings, 2)
	assert.Len(t, standings[0].Players, 3)
	assert.Len(t, standings[1].Players, 2)
}

func TestAggregateStandings_UnrosteredPlayerFiledUnderOpen(t *testing.T) {
	results := []MatchResultInput{
		{
			MatchKey:     "X-01",
			PlayerAName:  "Ghost",
			PlayerBName:  "Alice",
			HoleCount:    18,
			StoredTotalA: 3,
			StoredTotalB: 6,
			StoredWinner: WinnerB,
		},
	}

	standings := AggregateStandings(results, testRoster())

	var open *DivisionStandings
	for i := range standings {
		if standings[i].Division == "Open" {
			open = &standings[i]
		}
	}
	require.NotNil(t, open)
	assert.Equal(t, "Ghost", open.Players[0].Name)
	assert.Equal(t, 1, open.Players[0].Losses)
}

func TestAggregateStandings_SortOrderWithinDivision(t *testing.T) {
	mk := func(a, b string, totalA, totalB float64, winner Winner) MatchResultInput {
		return MatchResultInput{
			MatchKey: a + b, PlayerAName: a, PlayerBName: b,
			HoleCount: 18, StoredTotalA: totalA, StoredTotalB: totalB, StoredWinner: winner,
		}
	}
	results := []MatchResultInput{
		mk("Alice", "Bob", 6, 6, WinnerTie),
		mk("Carol", "Bob", 6, 3, WinnerA),
	}

	standings := AggregateStandings(results, testRoster())

	divisionA := standings[0].Players
	require.Len(t, divisionA, 3)
	// Bob: 9 points for; Alice and Carol both 6 — Carol has the win,
	// Alice only the tie, so Carol sorts ahead.
	assert.Equal(t, "Bob", divisionA[0].Name)
	assert.Equal(t, "Carol", divisionA[1].Name)
	assert.Equal(t, "Alice", divisionA[2].Name)
}

func TestAggregateStandings_Idempotent(t *testing.T) {
	holes := sequentialHoles(18)
	results := []MatchResultInput{
		{
			MatchKey: "A-01", PlayerAName: "Alice", PlayerBName: "Bob",
			HoleCount: 18, StartHole: 1, CourseHoles: holes, Scores: fullCard(9, 9),
		},
	}

	first := AggregateStandings(results, testRoster())
	second := AggregateStandings(results, testRoster())

	assert.Equal(t, first, second)
}

func TestStandingsStale(t *testing.T) {
	roster := testRoster()
	names := []string{"Alice", "Bob", "Carol", "Dana", "Evan"}

	assert.True(t, StandingsStale(nil, roster), "no cache")
	assert.True(t, StandingsStale([]string{"Alice"}, roster), "cache smaller than roster")
	assert.True(t, StandingsStale([]string{"Alice", "Bob", "Carol", "Dana", "Frank"}, roster), "renamed player")
	assert.False(t, StandingsStale(names, roster), "cache matches roster")
}

func TestStandingsLess(t *testing.T) {
	higher := StandingsEntry{Name: "Zoe", PointsFor: 12}
	lower := StandingsEntry{Name: "Abe", PointsFor: 10}
	assert.True(t, StandingsLess(higher, lower), "more points sorts first regardless of name")
	assert.False(t, StandingsLess(lower, higher))

	moreWins := StandingsEntry{Name: "Zoe", PointsFor: 10, Wins: 2}
	fewerWins := StandingsEntry{Name: "Abe", PointsFor: 10, Wins: 1}
	assert.True(t, StandingsLess(moreWins, fewerWins), "wins break a points tie")

	moreTies := StandingsEntry{Name: "Zoe", PointsFor: 10, Wins: 1, Ties: 2}
	fewerTies := StandingsEntry{Name: "Abe", PointsFor: 10, Wins: 1, Ties: 1}
	assert.True(t, StandingsLess(moreTies, fewerTies), "ties break a wins tie")

	alpha := StandingsEntry{Name: "Abe", PointsFor: 10, Wins: 1, Ties: 1}
	omega := StandingsEntry{Name: "Zoe", PointsFor: 10, Wins: 1, Ties: 1}
	assert.True(t, StandingsLess(alpha, omega), "name ascending is the final tie-break")
	assert.False(t, StandingsLess(omega, alpha))
}
