// internal/engine/motion.go
package engine

import "math"

// Speed multipliers applied to cursor travel pauses by jump distance.
// Longer jumps move visually faster per waypoint.
const (
	cursorMoveShortMultiplier  = 1.0 // 1-5 lines
	cursorMoveMediumMultiplier = 0.3 // 6-20 lines
	cursorMoveLongMultiplier   = 0.1 // 21+ lines
)

// motionSpeedMultiplier selects the per-waypoint pause multiplier for a jump
// of the given distance.
func motionSpeedMultiplier(distance int) float64 {
	switch {
	case distance <= 5:
		return cursorMoveShortMultiplier
	case distance <= 20:
		return cursorMoveMediumMultiplier
	default:
		return cursorMoveLongMultiplier
	}
}

// planCursorPath samples an eased path between two lines and returns the
// waypoint lines to visit, with adjacent duplicates collapsed. The path
// starts slow, accelerates through the middle, and settles at the target.
// Equal endpoints produce no waypoints.
func planCursorPath(fromLine, toLine int) []int {
	if fromLine == toLine {
		return nil
	}

	distance := toLine - fromLine
	if distance < 0 {
		distance = -distance
	}

	numSteps := int(math.Round(float64(distance) * 0.3))
	if numSteps < 10 {
		numSteps = 10
	}
	if numSteps > distance {
		numSteps = distance
	}

	var waypoints []int
	for i := 0; i <= numSteps; i++ {
		t := float64(i) / float64(numSteps)
		progress := int(math.Round(easeInOutCubic(t) * float64(distance)))

		line := fromLine
		if toLine > fromLine {
			line += progress
		} else {
			line -= progress
		}

		if len(waypoints) == 0 || waypoints[len(waypoints)-1] != line {
			waypoints = append(waypoints, line)
		}
	}
	return waypoints
}

// easeInOutCubic is a cubic easing curve: slow start, fast middle, slow end.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
