package rules

// RecomputeHarvestTotal sums detail quantities. Run it after every detail
// insert, update or delete, in the same transaction as the change.
func RecomputeHarvestTotal(quantities []float64) float64 {
	total := 0.0
	for _, q := range quantities {
		total += q
	}
	return total
}

func UsedArea(fieldAreas []float64) float64 {
	used := 0.0
	for _, a := range fieldAreas {
		used += a
	}
	return used
}

func LeftArea(farmArea float64, fieldAreas []float64) float64 {
	return farmArea - UsedArea(fieldAreas)
}

// Revenue is never stored; it always follows the harvest's current total.
func Revenue(unitPrice, harvestTotal float64) float64 {
	return unitPrice * harvestTotal
}
