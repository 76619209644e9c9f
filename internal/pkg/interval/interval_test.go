package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2026, 1, 27, h, m, 0, 0, time.UTC)
}

func iv(t *testing.T, startH, startM, endH, endM int) Interval {
	t.Helper()
	res, err := New(at(startH, startM), at(endH, endM))
	require.NoError(t, err)
	return res
}

func TestNew_RejectsInverted(t *testing.T) {
	_, err := New(at(12, 0), at(11, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(at(12, 0), at(12, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlaps_TouchingEdgesDoNotOverlap(t *testing.T) {
	a := iv(t, 10, 0, 11, 0)
	b := iv(t, 11, 0, 12, 0)

	assert.False(t, Overlaps(a, b))
	assert.False(t, Overlaps(b, a))
}

func TestOverlaps_PartialAndContained(t *testing.T) {
	a := iv(t, 10, 0, 12, 0)

	assert.True(t, Overlaps(a, iv(t, 11, 0, 13, 0)))
	assert.True(t, Overlaps(a, iv(t, 10, 30, 11, 30)))
	assert.True(t, Overlaps(a, iv(t, 9, 0, 13, 0)))
	assert.False(t, Overlaps(a, iv(t, 12, 0, 13, 0)))
	assert.False(t, Overlaps(a, iv(t, 8, 0, 10, 0)))
}

func TestMerge_CoalescesAndSorts(t *testing.T) {
	input := []Interval{
		iv(t, 14, 0, 15, 0),
		iv(t, 10, 0, 11, 0),
		iv(t, 10, 30, 12, 0),
		iv(t, 12, 0, 12, 30), // touching, merged too
	}

	merged := Merge(input)

	assert.Equal(t, []Interval{
		iv(t, 10, 0, 12, 30),
		iv(t, 14, 0, 15, 0),
	}, merged)
}

func TestMerge_StableUnderInputOrder(t *testing.T) {
	a := []Interval{iv(t, 10, 0, 11, 0), iv(t, 10, 30, 12, 0)}
	b := []Interval{iv(t, 10, 30, 12, 0), iv(t, 10, 0, 11, 0)}

	assert.Equal(t, Merge(a), Merge(b))
}

func TestMerge_Empty(t *testing.T) {
	assert.Nil(t, Merge(nil))
}

func TestSubtract_MiddleBusy(t *testing.T) {
	window := iv(t, 10, 0, 22, 0)
	busy := []Interval{iv(t, 12, 0, 13, 0)}

	free := Subtract(window, busy)

	assert.Equal(t, []Interval{
		iv(t, 10, 0, 12, 0),
		iv(t, 13, 0, 22, 0),
	}, free)
}

func TestSubtract_BusyClippedToWindow(t *testing.T) {
	window := iv(t, 10, 0, 18, 0)
	busy := Merge([]Interval{
		iv(t, 8, 0, 11, 0),  // overhangs the start
		iv(t, 17, 0, 20, 0), // overhangs the end
		iv(t, 6, 0, 7, 0),   // fully outside
	})

	free := Subtract(window, busy)

	assert.Equal(t, []Interval{iv(t, 11, 0, 17, 0)}, free)
}

func TestSubtract_BusyCoversWindow(t *testing.T) {
	window := iv(t, 10, 0, 18, 0)
	busy := []Interval{iv(t, 9, 0, 19, 0)}

	assert.Empty(t, Subtract(window, busy))
}

func TestSubtract_NoBusy(t *testing.T) {
	window := iv(t, 10, 0, 18, 0)
	assert.Equal(t, []Interval{window}, Subtract(window, nil))
}

// Free result never overlaps busy, and free+busy restricted to the
// window reconstructs the window.
func TestSubtract_Reconstruction(t *testing.T) {
	window := iv(t, 10, 0, 22, 0)
	busy := Merge([]Interval{
		iv(t, 9, 0, 10, 30),
		iv(t, 12, 0, 13, 0),
		iv(t, 13, 0, 14, 30),
		iv(t, 21, 0, 23, 0),
	})

	free := Subtract(window, busy)

	for _, f := range free {
		for _, b := range busy {
			assert.False(t, Overlaps(f, b), "free %v overlaps busy %v", f, b)
		}
	}

	total := window.Duration()
	var covered time.Duration
	for _, f := range free {
		covered += f.Duration()
	}
	for _, b := range busy {
		start, end := b.Start, b.End
		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		if end.After(start) {
			covered += end.Sub(start)
		}
	}
	assert.Equal(t, total, covered)
}
