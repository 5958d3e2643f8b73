package scoring

import (
	"math"
	"testing"
)

// constantTemps builds a temperature series of n hours at the given value.
func constantTemps(n int, value float64) []float64 {
	temps := make([]float64, n)
	for i := range temps {
		temps[i] = value
	}
	return temps
}

func TestDetectFreezeThaw(t *testing.T) {
	tests := []struct {
		name       string
		temps      func() []float64
		scoringIdx int
		wantFound  bool
		wantHours  int
		wantPeak   float64
	}{
		{
			name:       "constant cold has no event",
			temps:      func() []float64 { return constantTemps(500, -5) },
			scoringIdx: 499,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
		{
			name:       "constant warmth has no event",
			temps:      func() []float64 { return constantTemps(500, 4) },
			scoringIdx: 499,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
		{
			name: "thaw then freeze in otherwise cold series",
			temps: func() []float64 {
				temps := constantTemps(500, -5)
				// Thaw for 5 hours peaking at 4.2, freeze resumes after.
				for i := 300; i < 305; i++ {
					temps[i] = 2.0
				}
				temps[302] = 4.2
				return temps
			},
			scoringIdx: 499,
			wantFound:  true,
			// Freeze resumes at hour 305 and qualifies at hour 306.
			wantHours: 499 - 306,
			wantPeak:  4.2,
		},
		{
			name: "gap between thaw and freeze is allowed",
			temps: func() []float64 {
				temps := constantTemps(500, -5)
				for i := 300; i < 304; i++ {
					temps[i] = 3.0
				}
				// Near-zero hours between thaw end and hard freeze.
				for i := 304; i < 310; i++ {
					temps[i] = -0.5
				}
				return temps
			},
			scoringIdx: 499,
			wantFound:  true,
			wantHours:  499 - 311,
			wantPeak:   3.0,
		},
		{
			name: "two hour thaw does not qualify",
			temps: func() []float64 {
				temps := constantTemps(500, -5)
				temps[300] = 2.0
				temps[301] = 2.0
				return temps
			},
			scoringIdx: 499,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
		{
			name: "single freezing hour after thaw does not qualify",
			temps: func() []float64 {
				temps := constantTemps(500, 1.5)
				for i := 300; i < 304; i++ {
					temps[i] = 5.0
				}
				temps[304] = -2.0
				return temps
			},
			scoringIdx: 499,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
		{
			name: "most recent of two events wins",
			temps: func() []float64 {
				temps := constantTemps(500, -5)
				for i := 100; i < 105; i++ {
					temps[i] = 6.0
				}
				for i := 300; i < 304; i++ {
					temps[i] = 2.5
				}
				return temps
			},
			scoringIdx: 499,
			wantFound:  true,
			wantHours:  499 - 305,
			wantPeak:   2.5,
		},
		{
			name: "thaw without following freeze falls back to earlier event",
			temps: func() []float64 {
				temps := constantTemps(500, -5)
				for i := 200; i < 205; i++ {
					temps[i] = 3.5
				}
				// Recent thaw still ongoing at the scoring hour.
				for i := 480; i < 500; i++ {
					temps[i] = 2.0
				}
				return temps
			},
			scoringIdx: 499,
			wantFound:  true,
			wantHours:  499 - 206,
			wantPeak:   3.5,
		},
		{
			name: "thaw spanning the window start still anchors inside",
			temps: func() []float64 {
				temps := constantTemps(700, -5)
				// Thaw begins just before the 336-hour window opens; the
				// freeze anchor at hour 335 is the last hour inside it.
				for i := 330; i < 334; i++ {
					temps[i] = 2.5
				}
				temps[331] = 3.8
				return temps
			},
			scoringIdx: 670,
			wantFound:  true,
			wantHours:  670 - 335,
			wantPeak:   3.8,
		},
		{
			name: "anchor one hour before the window is ignored",
			temps: func() []float64 {
				temps := constantTemps(700, -5)
				// Freeze qualifies at hour 333, one hour outside the
				// window that opens at hour 334.
				for i := 328; i < 332; i++ {
					temps[i] = 2.0
				}
				return temps
			},
			scoringIdx: 670,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
		{
			name: "event outside lookback window is ignored",
			temps: func() []float64 {
				temps := constantTemps(800, -5)
				for i := 100; i < 105; i++ {
					temps[i] = 3.0
				}
				return temps
			},
			scoringIdx: 799,
			wantFound:  false,
			wantHours:  MaxFreezeThawLookbackHours,
			wantPeak:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFreezeThaw(tt.temps(), tt.scoringIdx)

			if result.Found() != tt.wantFound {
				t.Fatalf("Found() = %v, want %v", result.Found(), tt.wantFound)
			}
			if result.HoursSinceEvent != tt.wantHours {
				t.Errorf("HoursSinceEvent = %d, want %d", result.HoursSinceEvent, tt.wantHours)
			}
			if math.Abs(result.PeakThawTemp-tt.wantPeak) > 1e-9 {
				t.Errorf("PeakThawTemp = %.2f, want %.2f", result.PeakThawTemp, tt.wantPeak)
			}
		})
	}
}

func TestDetectFreezeThawDeterministic(t *testing.T) {
	temps := constantTemps(500, -4)
	for i := 250; i < 256; i++ {
		temps[i] = 3.1
	}

	first := DetectFreezeThaw(temps, 499)
	for i := 0; i < 10; i++ {
		again := DetectFreezeThaw(temps, 499)
		if again != first {
			t.Fatalf("run %d: result %+v differs from first run %+v", i, again, first)
		}
	}
}
