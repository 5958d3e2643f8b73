package types

// ElevationLevel identifies one of the measurement points of a resort.
type ElevationLevel string

const (
	ElevationBase ElevationLevel = "base"
	ElevationMid  ElevationLevel = "mid"
	ElevationTop  ElevationLevel = "top"
)

// QualityLevel is the ordinal snow quality bucket derived from the
// continuous score. Higher is better; QualityUnknown sorts last.
type QualityLevel int

const (
	QualityUnknown   QualityLevel = 0
	QualityHorrible  QualityLevel = 1
	QualityBad       QualityLevel = 2
	QualityPoor      QualityLevel = 3
	QualityFair      QualityLevel = 4
	QualityGood      QualityLevel = 5
	QualityExcellent QualityLevel = 6
)

func (q QualityLevel) String() string {
	switch q {
	case QualityExcellent:
		return "excellent"
	case QualityGood:
		return "good"
	case QualityFair:
		return "fair"
	case QualityPoor:
		return "poor"
	case QualityBad:
		return "bad"
	case QualityHorrible:
		return "horrible"
	default:
		return "unknown"
	}
}

// SortRank orders quality levels best-first with unknown last, for
// listings that present multiple resorts.
func (q QualityLevel) SortRank() int {
	if q == QualityUnknown {
		return 7
	}
	return int(QualityExcellent - q)
}

// MarshalJSON renders the level as its lowercase name, which is what
// the apps and website consume.
func (q QualityLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}

// ScoreResult is the outcome of scoring one elevation point: the
// continuous score in [1,6] plus its quality bucket. Score is 0 when
// Level is QualityUnknown.
type ScoreResult struct {
	Score float64      `json:"score"`
	Level QualityLevel `json:"level"`
}

// ResortScore combines the per-elevation results with the aggregated
// resort-level result.
type ResortScore struct {
	Levels    map[ElevationLevel]ScoreResult `json:"levels"`
	Aggregate ScoreResult                    `json:"aggregate"`
}
