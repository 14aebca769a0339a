package anneal

import "gonum.org/v1/gonum/stat"

// Stats summarizes a completed run for logging and reporting.
type Stats struct {
	AcceptanceRate float64
	MeanCost       float64
	CostStdDev     float64
	CostReduction  float64 // initial committed cost minus final cost
}

// Stats computes summary statistics over the run's cost history.
func (r *Result) Stats() Stats {
	if len(r.CostHistory) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(r.CostHistory, nil)
	return Stats{
		AcceptanceRate: float64(r.Accepted) / float64(r.Iterations),
		MeanCost:       mean,
		CostStdDev:     std,
		CostReduction:  r.CostHistory[0] - r.FinalCost,
	}
}
