package domain

import (
	"math"
	"time"
)

const (
	epochJ2000  = 2451545.0 // Julian Day of 2000-01-01 12:00 UT
	daysPerCent = 36525.0
)

// JulianDay converts a UTC instant to its Julian Day number using the
// standard Gregorian calendar conversion.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y, m := t.Year(), int(t.Month())
	day := float64(t.Day()) +
		float64(t.Hour())/24.0 +
		float64(t.Minute())/1440.0 +
		float64(t.Second())/86400.0
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return float64(int(365.25*float64(y+4716))) +
		float64(int(30.6001*float64(m+1))) +
		day + float64(b) - 1524.5
}

// julianCenturies returns the time axis of the ephemeris: Julian
// centuries elapsed since J2000.0. Negative for earlier instants.
func julianCenturies(jd float64) float64 {
	return (jd - epochJ2000) / daysPerCent
}

// normalizeDegrees reduces an angle to [0, 360) for any sign of input.
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d -= 360
	}
	return d
}
