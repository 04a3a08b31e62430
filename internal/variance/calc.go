package variance

import "math"

// Calculate derives the variance between collected and received liters.
// Variance liters are signed: negative means the station received less than
// the collector reported. When nothing was collected the percentage is zero
// rather than undefined.
func Calculate(collectedLiters, receivedLiters float64) Variance {
	v := Variance{
		CollectedLiters: collectedLiters,
		ReceivedLiters:  receivedLiters,
		VarianceLiters:  receivedLiters - collectedLiters,
	}

	if collectedLiters != 0 {
		v.VariancePercent = (v.VarianceLiters / collectedLiters) * 100
	}

	switch {
	case receivedLiters < collectedLiters:
		v.Type = TypeShortage
	case receivedLiters > collectedLiters:
		v.Type = TypeOverage
	default:
		v.Type = TypeNone
	}

	return v
}

// matchBand returns the first band of the variance's type whose range
// contains the absolute variance percentage. Bands must be sorted by
// MinPercent ascending, so overlapping ranges resolve to the lowest
// matching band.
func matchBand(bands []*RateConfig, varianceType string, variancePercent float64) *RateConfig {
	abs := math.Abs(variancePercent)
	for _, band := range bands {
		if band.VarianceType != varianceType {
			continue
		}
		if abs >= band.MinPercent && abs <= band.MaxPercent {
			return band
		}
	}
	return nil
}
