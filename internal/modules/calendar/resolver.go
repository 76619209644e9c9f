package calendar

// Drag-and-drop placement for the staff calendar. Everything here works
// in whole minutes relative to the visible day window, so the math stays
// identical regardless of timezone or date.

// BusySpan is an occupied stretch of the day, minutes from window start.
type BusySpan struct {
	StartMin int
	EndMin   int
}

// MoveResult is the outcome of resolving a drop position.
type MoveResult struct {
	// StartMin is the final snapped start, or -1 when no slot fits.
	StartMin int
	// Adjusted reports that the appointment could not stay where it was
	// dropped and was shifted to the nearest free start.
	Adjusted bool
	// OK is false when the day has no free stretch for this duration.
	OK bool
}

const snapStep = 30

// ResolveMove snaps a raw drop offset (minutes from window start) to the
// grid, clamps it into the window, and walks outward to the nearest free
// start when the snapped position collides with existing appointments.
// Earlier candidates win over later ones at equal distance.
func ResolveMove(rawStartMin, durationMin, windowMin int, busy []BusySpan) MoveResult {
	if durationMin <= 0 || windowMin <= 0 || durationMin > windowMin {
		return MoveResult{StartMin: -1}
	}

	maxStart := windowMin - durationMin

	desired := (rawStartMin + snapStep/2) / snapStep * snapStep
	if rawStartMin < 0 {
		desired = 0
	}
	if desired < 0 {
		desired = 0
	}
	if desired > maxStart {
		desired = maxStart
	}

	if isFree(desired, durationMin, busy) {
		return MoveResult{StartMin: desired, OK: true}
	}

	nearest := findNearestFree(desired, durationMin, maxStart, busy)
	if nearest < 0 {
		return MoveResult{StartMin: -1}
	}
	return MoveResult{StartMin: nearest, Adjusted: true, OK: true}
}

func isFree(startMin, durationMin int, busy []BusySpan) bool {
	endMin := startMin + durationMin
	for _, b := range busy {
		if startMin < b.EndMin && b.StartMin < endMin {
			return false
		}
	}
	return true
}

// findNearestFree tries offsets step by step in both directions from the
// desired start, earlier first, until a candidate fits or both sides run
// out of window.
func findNearestFree(desired, durationMin, maxStart int, busy []BusySpan) int {
	maxOffset := desired
	if maxStart-desired > maxOffset {
		maxOffset = maxStart - desired
	}

	for offset := snapStep; offset <= maxOffset; offset += snapStep {
		if earlier := desired - offset; earlier >= 0 && isFree(earlier, durationMin, busy) {
			return earlier
		}
		if later := desired + offset; later <= maxStart && isFree(later, durationMin, busy) {
			return later
		}
	}
	return -1
}
