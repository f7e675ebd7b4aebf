package engine

// ProjectDemand projects the aggregated demand curve onto the supply
// curve's price grid, producing a demand vector index-aligned with the
// supply points.
//
// Two projection variants exist in the system's history: a price lookup
// against the aggregated rows, and the reference model's row-by-row
// projection of the two sorted curves. Only the row-by-row projection
// reproduces the reference gap tables at every supply price, so it is the
// canonical behavior: supply row i sees the cumulative demand of demand
// row i. The first row therefore sees total demand (rows cumulate from the
// lowest price upward), and supply rows deeper than the last demand row
// see zero demand.
func ProjectDemand(supply []SupplyPoint, demand []MarketDemandPoint) []Amount {
	projected := make([]Amount, len(supply))
	for i := range supply {
		if i < len(demand) {
			projected[i] = demand[i].CumulativeDemand
		}
	}
	return projected
}
