package scoring

const (
	// MaxFreezeThawLookbackHours caps "hours since freeze-thaw" when no
	// event is found in the window (14 days).
	MaxFreezeThawLookbackHours = 336

	thawTempC      = 0.0
	freezeTempC    = -1.0
	minThawHours   = 3
	minFreezeHours = 2
)

// FreezeThawResult describes the most recent freeze-thaw event relative
// to a scoring hour. When no event exists within the lookback window,
// HoursSinceEvent is pinned at MaxFreezeThawLookbackHours and
// PeakThawTemp is 0.
type FreezeThawResult struct {
	HoursSinceEvent int
	PeakThawTemp    float64
	// EventIdx is the series index at which the event completed: the
	// hour the hard freeze following the thaw reached two hours and the
	// ice layer formed. -1 when no event was found. Window-based
	// features accumulate from this index forward.
	EventIdx int
}

// Found reports whether a qualifying event was located.
func (r FreezeThawResult) Found() bool {
	return r.EventIdx >= 0
}

// DetectFreezeThaw scans backward from scoringIdx for the most recent
// freeze-thaw event: a contiguous run of at least 3 hours above 0 degC
// (the thaw) followed, immediately or after a gap, by a contiguous run
// of at least 2 hours below -1 degC (the hard freeze that sets the ice
// layer). The event is anchored at the hour the freeze run reaches two
// hours; a cold spell that simply continues afterward does not move
// the event forward.
//
// The walk keeps the latest freeze run passed so far; the first thaw
// run of qualifying length then pairs with it, which is exactly the
// first hard freeze after that thaw. The most recent qualifying pair
// wins. The result is deterministic for a fixed series and scoring
// index.
//
// Only the event anchor must fall within the lookback window; the thaw
// run itself may begin before it, so the walk continues past the window
// start to complete a candidate pair.
func DetectFreezeThaw(temps []float64, scoringIdx int) FreezeThawResult {
	none := FreezeThawResult{
		HoursSinceEvent: MaxFreezeThawLookbackHours,
		EventIdx:        -1,
	}
	if scoringIdx < 0 || scoringIdx >= len(temps) {
		return none
	}

	freezeLen := 0        // length of the freeze run currently being walked
	freezeStart := -1     // earliest index of that run
	lastFreezeStart := -1 // start of the latest completed qualifying freeze run
	thawLen := 0
	peak := 0.0

	for i := scoringIdx; i >= 0; i-- {
		t := temps[i]

		if t < freezeTempC {
			freezeLen++
			freezeStart = i
			thawLen = 0
			peak = 0
			continue
		}

		// Walking backward, the freeze run (if any) ends here; record it
		// if it was long enough to qualify.
		if freezeLen >= minFreezeHours {
			lastFreezeStart = freezeStart
		}
		freezeLen = 0

		if t <= thawTempC {
			thawLen = 0
			peak = 0
			continue
		}

		if thawLen == 0 || t > peak {
			peak = t
		}
		thawLen++
		if thawLen < minThawHours || lastFreezeStart < 0 {
			continue
		}

		eventIdx := lastFreezeStart + minFreezeHours - 1
		if eventIdx < scoringIdx-MaxFreezeThawLookbackHours {
			// The anchor is outside the lookback window; any earlier
			// pair can only be older still.
			return none
		}

		// Qualifying event. Extend the thaw run to its full length so
		// peak covers the whole thaw phase.
		for j := i - 1; j >= 0 && temps[j] > thawTempC; j-- {
			if temps[j] > peak {
				peak = temps[j]
			}
		}
		return FreezeThawResult{
			HoursSinceEvent: scoringIdx - eventIdx,
			PeakThawTemp:    peak,
			EventIdx:        eventIdx,
		}
	}

	return none
}
