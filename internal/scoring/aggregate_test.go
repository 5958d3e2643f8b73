package scoring

import (
	"math"
	"testing"

	"github.com/wdvr/snowscore/internal/types"
)

func scored(score float64) types.ScoreResult {
	return types.ScoreResult{Score: score, Level: QualityForScore(score)}
}

func TestAggregateLevels(t *testing.T) {
	tests := []struct {
		name      string
		levels    map[types.ElevationLevel]types.ScoreResult
		wantScore float64
		wantLevel types.QualityLevel
	}{
		{
			name: "all three levels",
			levels: map[types.ElevationLevel]types.ScoreResult{
				types.ElevationTop:  scored(6.0),
				types.ElevationMid:  scored(4.0),
				types.ElevationBase: scored(2.0),
			},
			wantScore: 0.50*6.0 + 0.35*4.0 + 0.15*2.0,
			wantLevel: types.QualityGood,
		},
		{
			name: "top and base renormalized",
			levels: map[types.ElevationLevel]types.ScoreResult{
				types.ElevationTop:  scored(5.0),
				types.ElevationBase: scored(2.0),
			},
			wantScore: (0.50*5.0 + 0.15*2.0) / 0.65,
			wantLevel: types.QualityFair,
		},
		{
			name: "single level returns its own score",
			levels: map[types.ElevationLevel]types.ScoreResult{
				types.ElevationMid: scored(3.7),
			},
			wantScore: 3.7,
			wantLevel: types.QualityFair,
		},
		{
			name: "unknown level excluded",
			levels: map[types.ElevationLevel]types.ScoreResult{
				types.ElevationTop: scored(4.2),
				types.ElevationMid: {Level: types.QualityUnknown},
			},
			wantScore: 4.2,
			wantLevel: types.QualityFair,
		},
		{
			name:      "no levels",
			levels:    map[types.ElevationLevel]types.ScoreResult{},
			wantScore: 0,
			wantLevel: types.QualityUnknown,
		},
		{
			name: "all unknown",
			levels: map[types.ElevationLevel]types.ScoreResult{
				types.ElevationTop:  {Level: types.QualityUnknown},
				types.ElevationBase: {Level: types.QualityUnknown},
			},
			wantScore: 0,
			wantLevel: types.QualityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateLevels(tt.levels)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %.4f, want %.4f", got.Score, tt.wantScore)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %v, want %v", got.Level, tt.wantLevel)
			}
		})
	}
}

func TestAggregateTwoLevelScenario(t *testing.T) {
	// Resort with only top (5.0) and base (2.0): the remaining weights
	// renormalize, so (0.50*5.0 + 0.15*2.0)/0.65 = 2.8/0.65.
	got := AggregateLevels(map[types.ElevationLevel]types.ScoreResult{
		types.ElevationTop:  scored(5.0),
		types.ElevationBase: scored(2.0),
	})
	if math.Abs(got.Score-4.3076923077) > 1e-6 {
		t.Errorf("Score = %.6f, want 4.307692", got.Score)
	}
}
