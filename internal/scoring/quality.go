package scoring

import (
	"math"

	"github.com/wdvr/snowscore/internal/types"
)

// QualityForScore buckets a continuous score into its ordinal quality
// level. Rounding is half-up (3.5 -> 4) and the result is clamped to
// the six defined levels.
func QualityForScore(score float64) types.QualityLevel {
	n := int(math.Floor(score + 0.5))
	if n < 1 {
		n = 1
	}
	if n > 6 {
		n = 6
	}
	return types.QualityLevel(n)
}
