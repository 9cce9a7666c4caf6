package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialHoles builds n holes whose stroke index equals the hole
// number — hole 1 is the hardest, hole n the easiest.
func sequentialHoles(n int) []CourseHole {
	holes := make([]CourseHole, 0, n)
	for i := 1; i <= n; i++ {
		holes = append(holes, CourseHole{Number: i, Par: 4, StrokeIndex: i})
	}
	return holes
}

func TestAllocateStrokes_WholeStrokesToHardestHoles(t *testing.T) {
	holes := sequentialHoles(18)

	allocation := AllocateStrokes(6, holes)

	require.Len(t, allocation, 18)
	for i := 1; i <= 6; i++ {
		assert.Equal(t, 1.0, allocation[i], "hole %d should receive a stroke", i)
	}
	for i := 7; i <= 18; i++ {
		assert.Equal(t, 0.0, allocation[i], "hole %d should receive nothing", i)
	}
}

func TestAllocateStrokes_BasePlusRemainder(t *testing.T) {
	holes := sequentialHoles(18)

	// 21 strokes over 18 holes: one everywhere, extras on the 3 hardest.
	allocation := AllocateStrokes(21, holes)

	assert.Equal(t, 2.0, allocation[1])
	assert.Equal(t, 2.0, allocation[2])
	assert.Equal(t, 2.0, allocation[3])
	assert.Equal(t, 1.0, allocation[4])
	assert.Equal(t, 1.0, allocation[18])
}

func TestAllocateStrokes_HalfStrokeLandsOnHardestRemaining(t *testing.T) {
	holes := sequentialHoles(9)

	// A halved 7-stroke differential: 3.5 over nine holes.
	allocation := AllocateStrokes(3.5, holes)

	assert.Equal(t, 1.0, allocation[1])
	assert.Equal(t, 1.0, allocation[2])
	assert.Equal(t, 1.0, allocation[3])
	assert.Equal(t, 0.5, allocation[4])
	assert.Equal(t, 0.0, allocation[5])
}

func TestAllocateStrokes_StrokeIndexTieBrokenByHoleNumber(t *testing.T) {
	holes := []CourseHole{
		{Number: 7, Par: 4, StrokeIndex: 1},
		{Number: 2, Par: 4, StrokeIndex: 1},
		{Number: 5, Par: 4, StrokeIndex: 3},
	}

	allocation := AllocateStrokes(1, holes)

	assert.Equal(t, 1.0, allocation[2], "lower hole number wins the tie")
	assert.Equal(t, 0.0, allocation[7])
	assert.Equal(t, 0.0, allocation[5])
}

func TestAllocateStrokes_ConservesDifferential(t *testing.T) {
	for _, tc := range []struct {
		name         string
		differential float64
		holeCount    int
	}{
		{"zero", 0, 18},
		{"under a lap", 11, 18},
		{"exactly a lap", 18, 18},
		{"over a lap", 25, 18},
		{"nine holes half stroke", 4.5, 9},
		{"nine holes whole", 9, 9},
	} {
		t.Run(tc.name, func(t *testing.T) {
			allocation := AllocateStrokes(tc.differential, sequentialHoles(tc.holeCount))

			total := 0.0
			for _, strokes := range allocation {
				total += strokes
			}
			assert.Equal(t, tc.differential, total)
		})
	}
}

func TestAllocateStrokes_EmptyHoleList(t *testing.T) {
	allocation := AllocateStrokes(5, nil)
	assert.Empty(t, allocation)
}
