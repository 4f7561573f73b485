// Package metrics holds the prometheus collectors fed by the iterative
// solvers.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	solverIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geodesy_solver_iterations",
			Help:    "Iterations performed by a fixed-point solver call.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
		[]string{"solver"},
	)

	solverNonConverged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geodesy_solver_nonconverged_total",
			Help: "Solver calls that hit the iteration cap before converging.",
		},
		[]string{"solver"},
	)
)

// Register registers the solver collectors with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{solverIterations, solverNonConverged} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSolve records one solver call.
func ObserveSolve(solver string, iterations int, converged bool) {
	solverIterations.WithLabelValues(solver).Observe(float64(iterations))
	if !converged {
		solverNonConverged.WithLabelValues(solver).Inc()
	}
}

// NonConverged returns the non-convergence counter for solver. It is meant
// for tests.
func NonConverged(solver string) prometheus.Counter {
	return solverNonConverged.WithLabelValues(solver)
}
