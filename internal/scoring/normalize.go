package scoring

import (
	"fmt"
	"math"
)

// stdEpsilon is the threshold below which a feature's training standard
// deviation is treated as zero and normalization degrades to a plain
// mean shift.
const stdEpsilon = 1e-9

// NormalizationStats holds the per-feature mean and standard deviation
// from training. Read-only after construction; safe to share across
// concurrent scoring calls.
type NormalizationStats struct {
	mean []float64
	std  []float64
}

// NewNormalizationStats validates dimensions and finiteness of the
// training statistics.
func NewNormalizationStats(mean, std []float64) (*NormalizationStats, error) {
	if len(mean) != FeatureCount || len(std) != FeatureCount {
		return nil, fmt.Errorf("normalization stats have %d means and %d std-devs, want %d", len(mean), len(std), FeatureCount)
	}
	for i := range mean {
		if !isFinite(mean[i]) || !isFinite(std[i]) {
			return nil, fmt.Errorf("normalization stats for feature %q are not finite", FeatureNames()[i])
		}
	}
	s := &NormalizationStats{
		mean: append([]float64(nil), mean...),
		std:  append([]float64(nil), std...),
	}
	return s, nil
}

// Apply z-scores the feature values. A near-zero standard deviation
// falls back to the mean shift alone rather than dividing by zero.
func (s *NormalizationStats) Apply(x []float64) []float64 {
	z := make([]float64, len(x))
	for i, v := range x {
		z[i] = v - s.mean[i]
		if math.Abs(s.std[i]) > stdEpsilon {
			z[i] /= s.std[i]
		}
	}
	return z
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
