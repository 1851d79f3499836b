package tracking

import "github.com/teslashibe/go-rover/pkg/robot"

// ZoneThresholds are the decision boundaries for one frame width.
type ZoneThresholds struct {
	LeftMargin        float64 // px; centroid x at or below turns left
	RightMargin       float64 // px; centroid x at or above turns right
	AreaStopThreshold float64 // px²; area at or above stops
}

// Decide maps the tracked state to commands, distance axis first.
//
// Without a centroid nothing is emitted. With one, the distance axis always
// yields Forward or Stop, and the lateral axis yields Left, Right, or nothing
// when the centroid sits strictly between the margins.
func Decide(s State, th ZoneThresholds) []robot.Command {
	if s.Centroid == nil {
		return nil
	}

	cmds := make([]robot.Command, 0, 2)
	if s.Area < th.AreaStopThreshold {
		cmds = append(cmds, robot.Forward)
	} else {
		cmds = append(cmds, robot.Stop)
	}

	switch ZoneOf(float64(s.Centroid.X), th) {
	case ZoneLeft:
		cmds = append(cmds, robot.Left)
	case ZoneRight:
		cmds = append(cmds, robot.Right)
	}
	return cmds
}

// Zone names the horizontal band a centroid falls in.
type Zone string

const (
	ZoneLeft   Zone = "left"
	ZoneCenter Zone = "center"
	ZoneRight  Zone = "right"
)

// ZoneOf classifies x against the thresholds using the same inclusive
// margins as Decide.
func ZoneOf(x float64, th ZoneThresholds) Zone {
	switch {
	case x <= th.LeftMargin:
		return ZoneLeft
	case x >= th.RightMargin:
		return ZoneRight
	default:
		return ZoneCenter
	}
}
