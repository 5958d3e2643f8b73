package scoring

import (
	"github.com/wdvr/snowscore/internal/types"
)

// Elevation weights for the resort-level aggregate. Renormalized over
// the levels actually present, so any non-empty subset sums to 1.
var elevationWeights = map[types.ElevationLevel]float64{
	types.ElevationTop:  0.50,
	types.ElevationMid:  0.35,
	types.ElevationBase: 0.15,
}

// AggregateLevels combines per-elevation scores into one resort score.
// Levels with an unknown result are treated as absent. When nothing is
// scorable the aggregate itself is unknown.
func AggregateLevels(levels map[types.ElevationLevel]types.ScoreResult) types.ScoreResult {
	var weighted, total float64
	for level, result := range levels {
		if result.Level == types.QualityUnknown {
			continue
		}
		w := elevationWeights[level]
		weighted += w * result.Score
		total += w
	}
	if total == 0 {
		return types.ScoreResult{Level: types.QualityUnknown}
	}
	score := weighted / total
	return types.ScoreResult{Score: score, Level: QualityForScore(score)}
}
