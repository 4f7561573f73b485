package geodesy

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/tzneal/geodesy/internal/metrics"
)

// Solver names reported in logs and metrics.
const (
	solverIsometric = "inverse_isometric_latitude"
	solverFootpoint = "footpoint_latitude"
	solverGeodesic  = "geocentric_to_geodesic"
	solverInverse   = "vincenty_inverse"
	solverDirect    = "vincenty_direct"

	defaultEpsilon       = 1e-10
	defaultMaxIterations = 100
)

// Solver is the iteration policy shared by every fixed-point computation in
// the package: the isometric latitude inverse, the footpoint latitude, the
// geocentric to geodesic conversion and both Vincenty problems.
//
// Iteration stops once two successive estimates differ by no more than
// Epsilon, or after MaxIterations refinements. Hitting the cap is not an
// error: the last estimate is returned and Estimate.Converged is false.
type Solver struct {
	Epsilon       float64
	MaxIterations int

	// Logger receives a warning for every call that does not converge. A
	// nil Logger disables logging.
	Logger *slog.Logger
}

// DefaultSolver is the policy used by the package level functions.
var DefaultSolver = Solver{Epsilon: defaultEpsilon, MaxIterations: defaultMaxIterations}

// Estimate is the outcome of one iterative computation.
type Estimate struct {
	Value      float64
	Converged  bool
	Iterations int
}

// Validate checks that the policy can terminate.
func (s Solver) Validate() error {
	if !(s.Epsilon > 0) || math.IsInf(s.Epsilon, 0) {
		return fmt.Errorf("%w: solver epsilon must be a positive finite number", ErrInvalidParameter)
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("%w: solver iteration cap must not be negative", ErrInvalidParameter)
	}
	return nil
}

// fixedPoint iterates x = next(x) starting from next(x0). The first
// evaluation is not counted as an iteration.
func (s Solver) fixedPoint(name string, x0 float64, next func(float64) float64) Estimate {
	prev := x0
	x := next(prev)
	i := 0
	for math.Abs(x-prev) > s.Epsilon && i < s.MaxIterations {
		prev = x
		x = next(prev)
		i++
	}
	return s.finish(name, x, math.Abs(x-prev), i)
}

func (s Solver) finish(name string, value, delta float64, iterations int) Estimate {
	converged := delta <= s.Epsilon
	metrics.ObserveSolve(name, iterations, converged)
	if !converged && s.Logger != nil {
		s.Logger.LogAttrs(context.Background(), slog.LevelWarn, "iteration did not converge",
			slog.String("solver", name),
			slog.Int("iterations", iterations),
			slog.Float64("delta", delta))
	}
	return Estimate{Value: value, Converged: converged, Iterations: iterations}
}
