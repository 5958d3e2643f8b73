// Package scoring implements the snow quality scoring engine: feature
// extraction from hourly weather history, normalization against fixed
// training statistics, a small feed-forward network, and aggregation of
// per-elevation scores into a resort score.
package scoring

import (
	"errors"
	"math"

	"github.com/wdvr/snowscore/internal/types"
)

// FeatureCount is the dimension of the feature vector and of the model
// artifact's statistics and weight matrices.
const FeatureCount = 24

// MinHistoryHours is the shortest history (before the scoring hour)
// for which the rolling windows are well-defined.
const MinHistoryHours = 72

// ErrInsufficientHistory is returned when the series is too short to
// score. Callers surface it as an unknown quality level, not a failure.
var ErrInsufficientHistory = errors.New("insufficient history before scoring hour")

// recencyEpsilonDays guards the thaw-intensity division when the event
// happened within the scoring day.
const recencyEpsilonDays = 1.0 / 24.0

// FeatureVector holds the 24 features for one elevation point at one
// scoring hour. The field order is a contract with the model artifact:
// Slice returns the values in exactly the order the normalization
// statistics and network weights were trained against.
type FeatureVector struct {
	CurTemp      float64
	MaxTemp24h   float64
	MinTemp24h   float64
	TempTrend48h float64

	FreezeThawDaysAgo    float64
	WarmestThaw          float64
	ThawIntensityRecency float64

	SnowSinceFreezeCM float64
	Snowfall24hCM     float64
	Snowfall72hCM     float64
	OlderSnowAccum    float64

	ElevationKM float64

	HoursAbove0CFT float64
	HoursAbove3CFT float64
	HoursAbove6CFT float64

	CurHoursAbove0C float64
	CurHoursAbove3C float64
	CurHoursAbove6C float64

	FreshPowderIndicator       float64
	AccumulatedPowderIndicator float64
	WarmDegradation            float64
	SevereThawDamage           float64
	TempAdjustedFreshSnow      float64
	SummerFlag                 float64
}

// Slice converts the vector to the fixed model ordering.
func (f *FeatureVector) Slice() []float64 {
	return []float64{
		f.CurTemp,
		f.MaxTemp24h,
		f.MinTemp24h,
		f.TempTrend48h,
		f.FreezeThawDaysAgo,
		f.WarmestThaw,
		f.ThawIntensityRecency,
		f.SnowSinceFreezeCM,
		f.Snowfall24hCM,
		f.Snowfall72hCM,
		f.OlderSnowAccum,
		f.ElevationKM,
		f.HoursAbove0CFT,
		f.HoursAbove3CFT,
		f.HoursAbove6CFT,
		f.CurHoursAbove0C,
		f.CurHoursAbove3C,
		f.CurHoursAbove6C,
		f.FreshPowderIndicator,
		f.AccumulatedPowderIndicator,
		f.WarmDegradation,
		f.SevereThawDamage,
		f.TempAdjustedFreshSnow,
		f.SummerFlag,
	}
}

// FeatureNames returns the artifact-order feature names, matching the
// key order of the model artifact's statistics.
func FeatureNames() []string {
	return []string{
		"cur_temp",
		"max_temp_24h",
		"min_temp_24h",
		"temp_trend_48h",
		"freeze_thaw_days_ago",
		"warmest_thaw",
		"thaw_intensity_recency",
		"snow_since_freeze_cm",
		"snowfall_24h_cm",
		"snowfall_72h_cm",
		"older_snow_accum",
		"elevation_km",
		"hours_above_0c_ft",
		"hours_above_3c_ft",
		"hours_above_6c_ft",
		"cur_hours_above_0c",
		"cur_hours_above_3c",
		"cur_hours_above_6c",
		"fresh_powder_indicator",
		"accumulated_powder_indicator",
		"warm_degradation",
		"severe_thaw_damage",
		"temp_adjusted_fresh_snow",
		"summer_flag",
	}
}

// ExtractFeatures computes the feature vector for the sample at
// scoringIdx. The series must already have passed Series.Validate;
// ErrInsufficientHistory is returned when fewer than MinHistoryHours
// samples precede the scoring hour.
func ExtractFeatures(series types.Series, scoringIdx int) (*FeatureVector, error) {
	if scoringIdx < 0 || scoringIdx >= len(series) {
		return nil, ErrInsufficientHistory
	}
	if scoringIdx < MinHistoryHours {
		return nil, ErrInsufficientHistory
	}

	temps := make([]float64, scoringIdx+1)
	for i := 0; i <= scoringIdx; i++ {
		temps[i] = series[i].TempC
	}

	ft := DetectFreezeThaw(temps, scoringIdx)

	cur := series[scoringIdx]
	f := &FeatureVector{
		CurTemp:     cur.TempC,
		ElevationKM: cur.ElevationM / 1000.0,
	}

	// Rolling temperature windows ending at the scoring hour. A window
	// of N hours covers the scoring hour plus the N-1 before it.
	f.MaxTemp24h = maxTemp(temps, scoringIdx, 24)
	f.MinTemp24h = minTemp(temps, scoringIdx, 24)
	f.TempTrend48h = maxTemp(temps, scoringIdx, 48) - f.MaxTemp24h

	f.FreezeThawDaysAgo = float64(ft.HoursSinceEvent) / 24.0
	f.WarmestThaw = ft.PeakThawTemp
	f.ThawIntensityRecency = f.WarmestThaw / math.Max(f.FreezeThawDaysAgo, recencyEpsilonDays)

	f.Snowfall24hCM = sumSnowfall(series, scoringIdx, 24)
	f.Snowfall72hCM = sumSnowfall(series, scoringIdx, 72)
	f.OlderSnowAccum = math.Max(0, f.Snowfall72hCM-f.Snowfall24hCM)

	// Window since the freeze-thaw event, or the full capped lookback
	// when none was found.
	sinceIdx := ft.EventIdx
	if !ft.Found() {
		sinceIdx = scoringIdx - MaxFreezeThawLookbackHours
		if sinceIdx < 0 {
			sinceIdx = 0
		}
	}
	for i := sinceIdx; i <= scoringIdx; i++ {
		f.SnowSinceFreezeCM += series[i].SnowfallCM
		if temps[i] > 0 {
			f.HoursAbove0CFT++
		}
		if temps[i] > 3 {
			f.HoursAbove3CFT++
		}
		if temps[i] > 6 {
			f.HoursAbove6CFT++
		}
	}

	f.CurHoursAbove0C = float64(contiguousWarmHours(temps, scoringIdx, 0))
	f.CurHoursAbove3C = float64(contiguousWarmHours(temps, scoringIdx, 3))
	f.CurHoursAbove6C = float64(contiguousWarmHours(temps, scoringIdx, 6))

	f.FreshPowderIndicator = f.Snowfall24hCM * math.Max(0, -f.CurTemp) / 10.0
	f.AccumulatedPowderIndicator = f.SnowSinceFreezeCM * math.Max(0, -f.CurTemp) / 10.0
	f.WarmDegradation = math.Max(0, f.CurTemp) * f.CurHoursAbove0C
	f.SevereThawDamage = math.Max(0, f.MaxTemp24h-3) * f.HoursAbove3CFT
	if f.CurTemp <= 0 {
		f.TempAdjustedFreshSnow = f.Snowfall24hCM
	} else {
		f.TempAdjustedFreshSnow = f.Snowfall24hCM * 0.5
	}
	if f.CurTemp > 10 && f.CurHoursAbove0C >= 48 {
		f.SummerFlag = 1.0
	}

	return f, nil
}

func maxTemp(temps []float64, end, window int) float64 {
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	m := temps[start]
	for i := start + 1; i <= end; i++ {
		if temps[i] > m {
			m = temps[i]
		}
	}
	return m
}

func minTemp(temps []float64, end, window int) float64 {
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	m := temps[start]
	for i := start + 1; i <= end; i++ {
		if temps[i] < m {
			m = temps[i]
		}
	}
	return m
}

func sumSnowfall(series types.Series, end, window int) float64 {
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		sum += series[i].SnowfallCM
	}
	return sum
}

// contiguousWarmHours counts hours above the threshold walking backward
// from the scoring hour, stopping at the first hour at or below it.
func contiguousWarmHours(temps []float64, end int, threshold float64) int {
	n := 0
	for i := end; i >= 0 && temps[i] > threshold; i-- {
		n++
	}
	return n
}
