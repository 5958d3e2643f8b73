package scoring

import (
	"sort"
	"testing"

	"github.com/wdvr/snowscore/internal/types"
)

func TestQualityForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.QualityLevel
	}{
		{1.0, types.QualityHorrible},
		{1.49, types.QualityHorrible},
		{1.5, types.QualityBad}, // ties round up
		{2.5, types.QualityPoor},
		{3.49, types.QualityPoor},
		{3.5, types.QualityFair},
		{4.5, types.QualityGood},
		{5.5, types.QualityExcellent},
		{6.0, types.QualityExcellent},
		// Defensive clamping for values outside the score domain.
		{0.2, types.QualityHorrible},
		{7.8, types.QualityExcellent},
	}

	for _, tt := range tests {
		if got := QualityForScore(tt.score); got != tt.want {
			t.Errorf("QualityForScore(%.2f) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestQualityLevelSortsUnknownLast(t *testing.T) {
	levels := []types.QualityLevel{
		types.QualityPoor,
		types.QualityUnknown,
		types.QualityExcellent,
		types.QualityHorrible,
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].SortRank() < levels[j].SortRank()
	})

	want := []types.QualityLevel{
		types.QualityExcellent,
		types.QualityPoor,
		types.QualityHorrible,
		types.QualityUnknown,
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, levels[i], want[i])
		}
	}
}
