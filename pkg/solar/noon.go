// Package solar computes local solar noon, used to pick the midday
// scoring hour for a resort's coordinates.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// EquationOfTimeMin returns the equation of time, in minutes, for the
// given instant: apparent solar time minus mean solar time.
func EquationOfTimeMin(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	eps0 := 23.0 + (26.0+21.448/60.0)/60.0 - (46.8150*T+0.00059*T*T-0.001813*T*T*T)/3600.0
	y := math.Tan(degToRad(eps0) / 2.0)
	y *= y

	l0r := degToRad(L0)
	mr := degToRad(M)
	E := y*math.Sin(2*l0r) -
		2*e*math.Sin(mr) +
		4*e*y*math.Sin(mr)*math.Cos(2*l0r) -
		0.5*y*y*math.Sin(4*l0r) -
		1.25*e*e*math.Sin(2*mr)

	return 4.0 * radToDeg(E)
}

// Noon returns solar noon at the given longitude on the given date,
// expressed in the supplied location. Longitude is positive east.
func Noon(date time.Time, lonDeg float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	d := date.In(time.UTC)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	// First pass with the midday equation of time, then refine once.
	noonUTC := midnight.Add(time.Duration((720.0-4.0*lonDeg)*float64(time.Minute)) - time.Duration(EquationOfTimeMin(midnight.Add(12*time.Hour))*float64(time.Minute)))
	noonUTC = midnight.Add(time.Duration((720.0-4.0*lonDeg)*float64(time.Minute)) - time.Duration(EquationOfTimeMin(noonUTC)*float64(time.Minute)))

	return noonUTC.In(loc)
}

// ScoringHour returns the hour used as the scoring instant for a
// resort: solar noon truncated to the containing hour. When no
// longitude is known, clock noon in the location is used instead.
func ScoringHour(date time.Time, lonDeg float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if lonDeg == 0 {
		d := date.In(loc)
		return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
	}
	noon := Noon(date, lonDeg, loc)
	return noon.Truncate(time.Hour)
}
