package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	for _, tc := range []struct {
		name      string
		recorded  int
		length    int
		finalized bool
		expected  MatchStatus
	}{
		{"nothing recorded", 0, 18, false, StatusNotStarted},
		{"mid round", 7, 18, false, StatusInProgress},
		{"last hole pending", 17, 18, false, StatusInProgress},
		{"all holes in", 18, 18, false, StatusCompleted},
		{"nine hole complete", 9, 9, false, StatusCompleted},
		{"finalized wins", 18, 18, true, StatusFinalized},
		{"finalized mid round", 5, 18, true, StatusFinalized},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusFor(tc.recorded, tc.length, tc.finalized))
		})
	}
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Not started", StatusNotStarted.Label())
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "Finalized", StatusFinalized.Label())
}

func TestFinalizeScorecard_RequiresRecordedHoles(t *testing.T) {
	card := BuildScorecard(nil, 4, 2, sequentialHoles(18), 18, 1)

	snapshot, err := FinalizeScorecard(card, nil)

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrNoHoles)
}

func TestFinalizeScorecard_CapturesOutcome(t *testing.T) {
	holes := sequentialHoles(18)
	scores := make([]HoleScore, 0, 18)
	for i := 1; i <= 18; i++ {
		a := 5 // B takes the back eight
		if i <= 10 {
			a = 3 // A wins the first ten holes
		}
		scores = append(scores, HoleScore{HoleNumber: i, GrossA: gross(a), GrossB: gross(4)})
	}
	card := BuildScorecard(scores, 0, 0, holes, 18, 1)

	snapshot, err := FinalizeScorecard(card, nil)

	require.NoError(t, err)
	assert.Equal(t, 10.0, snapshot.Outcome.PointsA)
	assert.Equal(t, WinnerA, snapshot.Outcome.Winner)
	assert.Equal(t, 1.0, snapshot.Outcome.BonusA)
	assert.Equal(t, 11.0, snapshot.Outcome.TotalA)
	assert.Len(t, snapshot.Rows, 18)
}

// Once finalized, later changes to the course reference data must not
// reach the snapshot.
func TestFinalizeScorecard_SnapshotIsIsolatedFromLiveData(t *testing.T) {
	holes := sequentialHoles(18)
	scores := []HoleScore{{HoleNumber: 1, GrossA: gross(4), GrossB: gross(5)}}
	card := BuildScorecard(scores, 0, 0, holes, 18, 1)

	snapshot, err := FinalizeScorecard(card, nil)
	require.NoError(t, err)

	// Simulate a course-data correction after the fact.
	card.Rows[0].Par = 5
	card.ActiveHoles[0].StrokeIndex = 18

	assert.Equal(t, 4, snapshot.Rows[0].Par)
	assert.Equal(t, 1, snapshot.Holes[0].StrokeIndex)
}

func TestTransition_RecordHole(t *testing.T) {
	state := MatchState{MatchLength: 18}

	state, err := Transition(state, ActionRecordHole, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, state.RecordedHoles)
	assert.Equal(t, StatusInProgress, state.Status())
}

func TestTransition_FinalizeWithNoDataFails(t *testing.T) {
	state := MatchState{MatchLength: 18}

	next, err := Transition(state, ActionFinalize, nil)

	assert.ErrorIs(t, err, ErrNoHoles)
	assert.Equal(t, state, next, "a failed finalize leaves the match unchanged")
}

func TestTransition_FinalizeFreezesSnapshot(t *testing.T) {
	card := BuildScorecard(
		[]HoleScore{{HoleNumber: 1, GrossA: gross(4), GrossB: gross(5)}},
		0, 0, sequentialHoles(18), 18, 1,
	)
	snapshot, err := FinalizeScorecard(card, nil)
	require.NoError(t, err)

	state := MatchState{RecordedHoles: 1, MatchLength: 18}
	state, err = Transition(state, ActionFinalize, snapshot)

	require.NoError(t, err)
	assert.True(t, state.Finalized)
	assert.Equal(t, StatusFinalized, state.Status())
	assert.Same(t, snapshot, state.Snapshot)
}

func TestTransition_ResetClearsEverything(t *testing.T) {
	state := MatchState{RecordedHoles: 18, MatchLength: 18, Finalized: true, Snapshot: &Snapshot{}}

	state, err := Transition(state, ActionReset, nil)

	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, state.Status())
	assert.Equal(t, 0, state.RecordedHoles)
	assert.False(t, state.Finalized)
	assert.Nil(t, state.Snapshot)
}

func TestTransition_UnknownAction(t *testing.T) {
	_, err := Transition(MatchState{}, Action("replay"), nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}
