// Package types contains the domain types shared between the scoring
// engine, the storage layer, and the REST controller.
package types

import (
	"fmt"
	"math"
	"time"
)

// HourlySample is a single hour of weather history for one elevation
// point. SnowfallCM is the snow that fell during that hour, not a
// running total.
type HourlySample struct {
	Time       time.Time
	TempC      float64
	SnowfallCM float64
	ElevationM float64
}

// Series is an ordered, gap-free hourly weather history, oldest first.
type Series []HourlySample

// Validate checks that the series is strictly increasing at hourly
// resolution and contains only finite values.
func (s Series) Validate() error {
	for i, sample := range s {
		if math.IsNaN(sample.TempC) || math.IsInf(sample.TempC, 0) {
			return &MalformedSeriesError{Index: i, Reason: "temperature is not finite"}
		}
		if math.IsNaN(sample.SnowfallCM) || math.IsInf(sample.SnowfallCM, 0) {
			return &MalformedSeriesError{Index: i, Reason: "snowfall is not finite"}
		}
		if i == 0 {
			continue
		}
		gap := sample.Time.Sub(s[i-1].Time)
		if gap <= 0 {
			return &MalformedSeriesError{Index: i, Reason: "timestamps are not strictly increasing"}
		}
		if gap != time.Hour {
			return &MalformedSeriesError{Index: i, Reason: fmt.Sprintf("gap of %s between samples, expected 1h", gap)}
		}
	}
	return nil
}

// IndexAt returns the index of the sample at the given hour, or -1 if
// the series does not contain it.
func (s Series) IndexAt(t time.Time) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Time.Equal(t) {
			return i
		}
		if s[i].Time.Before(t) {
			break
		}
	}
	return -1
}

// MalformedSeriesError reports a series that cannot be scored: broken
// ordering, gaps, or non-finite values.
type MalformedSeriesError struct {
	Index  int
	Reason string
}

func (e *MalformedSeriesError) Error() string {
	return fmt.Sprintf("malformed series at sample %d: %s", e.Index, e.Reason)
}
