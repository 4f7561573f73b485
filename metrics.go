package geodesy

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tzneal/geodesy/internal/metrics"
)

// RegisterMetrics registers the solver collectors with reg:
// geodesy_solver_iterations, a histogram of iterations per call, and
// geodesy_solver_nonconverged_total, the calls that hit the iteration cap.
// Both are labelled by solver.
func RegisterMetrics(reg prometheus.Registerer) error {
	return metrics.Register(reg)
}
