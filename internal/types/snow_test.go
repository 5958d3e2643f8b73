package types

import (
	"math"
	"testing"
	"time"
)

func validSeries(n int) Series {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	s := make(Series, n)
	for i := range s {
		s[i] = HourlySample{
			Time:       start.Add(time.Duration(i) * time.Hour),
			TempC:      -3,
			SnowfallCM: 0.2,
			ElevationM: 1600,
		}
	}
	return s
}

func TestSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s Series)
		wantErr bool
	}{
		{"valid", func(Series) {}, false},
		{"NaN temperature", func(s Series) { s[3].TempC = math.NaN() }, true},
		{"infinite snowfall", func(s Series) { s[5].SnowfallCM = math.Inf(1) }, true},
		{"duplicate timestamp", func(s Series) { s[4].Time = s[3].Time }, true},
		{"reversed timestamps", func(s Series) { s[4].Time = s[3].Time.Add(-time.Hour) }, true},
		{"sub-hourly gap", func(s Series) { s[4].Time = s[4].Time.Add(-time.Minute) }, true},
		{"missing hour", func(s Series) { s[4].Time = s[4].Time.Add(time.Hour) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSeries(10)
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSeriesIndexAt(t *testing.T) {
	s := validSeries(10)

	if got := s.IndexAt(s[7].Time); got != 7 {
		t.Errorf("IndexAt = %d, want 7", got)
	}
	if got := s.IndexAt(s[9].Time.Add(time.Hour)); got != -1 {
		t.Errorf("IndexAt past end = %d, want -1", got)
	}
	if got := s.IndexAt(s[0].Time.Add(30 * time.Minute)); got != -1 {
		t.Errorf("IndexAt between samples = %d, want -1", got)
	}
}

func TestQualityLevelString(t *testing.T) {
	tests := []struct {
		level QualityLevel
		want  string
	}{
		{QualityExcellent, "excellent"},
		{QualityGood, "good"},
		{QualityFair, "fair"},
		{QualityPoor, "poor"},
		{QualityBad, "bad"},
		{QualityHorrible, "horrible"},
		{QualityUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
