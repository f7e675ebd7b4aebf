package engine

// ComputeGaps builds the gap table: cumulative supply minus projected
// demand at each supply point, in fixed-point arithmetic. Pure transform,
// recomputed on every run.
func ComputeGaps(supply []SupplyPoint, projectedDemand []Amount) []GapPoint {
	gaps := make([]GapPoint, len(supply))
	for i, sp := range supply {
		demand := projectedDemand[i]
		gaps[i] = GapPoint{
			Price:            sp.Price,
			CumulativeSupply: sp.CumulativeSupply,
			Demand:           demand,
			Gap:              sp.CumulativeSupply - demand,
		}
	}
	return gaps
}
