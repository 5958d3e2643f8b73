package scoring

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wdvr/snowscore/internal/types"
)

// Engine scores elevation points with a fixed model artifact. The
// stats and weights are injected at construction and never mutated, so
// a single Engine is safe for arbitrarily many concurrent callers.
type Engine struct {
	stats   *NormalizationStats
	weights *NetworkWeights
	logger  *zap.SugaredLogger
}

// NewEngine creates an Engine around the two read-only artifacts.
func NewEngine(stats *NormalizationStats, weights *NetworkWeights, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		stats:   stats,
		weights: weights,
		logger:  logger,
	}
}

// ScoreSeries scores one elevation point at the given scoring hour.
// A series with too little history yields an unknown result and no
// error; a malformed series is an error.
func (e *Engine) ScoreSeries(series types.Series, scoringHour time.Time) (types.ScoreResult, error) {
	result, _, err := e.ScoreSeriesFeatures(series, scoringHour)
	return result, err
}

// ScoreSeriesFeatures is ScoreSeries plus the intermediate feature
// vector, which the batch tooling and tests inspect.
func (e *Engine) ScoreSeriesFeatures(series types.Series, scoringHour time.Time) (types.ScoreResult, *FeatureVector, error) {
	if err := series.Validate(); err != nil {
		return types.ScoreResult{Level: types.QualityUnknown}, nil, err
	}

	idx := series.IndexAt(scoringHour)
	if idx < 0 {
		return types.ScoreResult{Level: types.QualityUnknown}, nil,
			fmt.Errorf("series does not contain scoring hour %s", scoringHour.Format(time.RFC3339))
	}

	features, err := ExtractFeatures(series, idx)
	if errors.Is(err, ErrInsufficientHistory) {
		e.logger.Debugf("series too short to score at %s, returning unknown", scoringHour.Format(time.RFC3339))
		return types.ScoreResult{Level: types.QualityUnknown}, nil, nil
	}
	if err != nil {
		return types.ScoreResult{Level: types.QualityUnknown}, nil, err
	}

	z := e.stats.Apply(features.Slice())
	score := e.weights.Forward(z)
	return types.ScoreResult{Score: score, Level: QualityForScore(score)}, features, nil
}

// ScoreResort scores every provided elevation level concurrently and
// aggregates the results. Each level's computation is independent; the
// aggregate waits on all of them. A level whose series fails to score
// is reported unknown and excluded from the aggregate rather than
// failing the whole resort.
func (e *Engine) ScoreResort(levels map[types.ElevationLevel]types.Series, scoringHour time.Time) types.ResortScore {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[types.ElevationLevel]types.ScoreResult, len(levels))
	)

	for level, series := range levels {
		wg.Add(1)
		go func(level types.ElevationLevel, series types.Series) {
			defer wg.Done()
			result, err := e.ScoreSeries(series, scoringHour)
			if err != nil {
				e.logger.Warnf("scoring %s elevation failed: %v", level, err)
				result = types.ScoreResult{Level: types.QualityUnknown}
			}
			mu.Lock()
			results[level] = result
			mu.Unlock()
		}(level, series)
	}
	wg.Wait()

	return types.ResortScore{
		Levels:    results,
		Aggregate: AggregateLevels(results),
	}
}
