package oneline

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrNoReachablePath reports a start from which no admissible transition
	// exists. It is not fatal: planners move on to the next start.
	ErrNoReachablePath = errors.New("no reachable path")

	// ErrDegenerateGeometry reports a stroke with coincident endpoints or an
	// undefined end tangent.
	ErrDegenerateGeometry = errors.New("degenerate stroke geometry")

	ErrInvalidStroke = errors.New("invalid stroke")
	ErrInvalidConfig = errors.New("invalid config")
)

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
