package interval

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// Touching edges ([10,11) and [11,12)) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Interval) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

// Merge coalesces a set of intervals into the minimal sorted,
// non-overlapping covering set. Touching intervals are merged.
// The input slice is not modified.
func Merge(list []Interval) []Interval {
	if len(list) == 0 {
		return nil
	}

	sorted := make([]Interval, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := make([]Interval, 0, len(sorted))
	for _, iv := range sorted {
		if len(merged) == 0 {
			merged = append(merged, iv)
			continue
		}
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// Subtract removes the busy intervals from the window and returns the
// remaining free sub-intervals in chronological order. busy must be
// sorted and non-overlapping (as produced by Merge).
func Subtract(window Interval, busy []Interval) []Interval {
	free := make([]Interval, 0, len(busy)+1)
	cur := window.Start

	for _, b := range busy {
		if !b.End.After(window.Start) || !b.Start.Before(window.End) {
			continue
		}
		if b.Start.After(cur) {
			free = append(free, Interval{Start: cur, End: minTime(b.Start, window.End)})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(window.End) {
			break
		}
	}

	if cur.Before(window.End) {
		free = append(free, Interval{Start: cur, End: window.End})
	}
	return free
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
