package domain

import "math"

// Simplified ephemeris: mean longitudes with low-order corrections,
// accurate to roughly a degree inside the supported year window. All
// functions are pure float64 math on the Julian Day axis.

// sunLongitude returns the Sun's apparent ecliptic longitude: mean
// longitude corrected by the equation of center.
func sunLongitude(jd float64) float64 {
	t := julianCenturies(jd)
	l0 := normalizeDegrees(280.46646 + 36000.76983*t)
	m := radians(normalizeDegrees(357.52911 + 35999.05029*t))
	c := (1.914602-0.004817*t)*math.Sin(m) + 0.019993*math.Sin(2*m)
	return normalizeDegrees(l0 + c)
}

// moonLongitude returns the Moon's ecliptic longitude: mean longitude
// plus the two dominant perturbation terms (evection is ignored).
func moonLongitude(jd float64) float64 {
	t := julianCenturies(jd)
	l := 218.3164477 + 481267.88123421*t
	m := 134.9633964 + 477198.8675055*t
	d := 297.8501921 + 445267.1114034*t
	return normalizeDegrees(l +
		6.289*math.Sin(radians(m)) +
		1.274*math.Sin(radians(2*d-m)))
}

// planetLongitude returns a planet's mean ecliptic longitude from its
// linear elements, plus whether it appears retrograde. Retrogradation
// is estimated from solar elongation: superior planets retrograde
// around opposition, inferior planets around conjunction.
func planetLongitude(jd float64, p PlanetRule, sunLon float64) (float64, bool) {
	t := julianCenturies(jd)
	lon := normalizeDegrees(p.BaseLongitude + p.CenturyRate*t)
	elong := normalizeDegrees(lon - sunLon)
	var retro bool
	if p.SemiMajorAU > 1 {
		retro = elong > 150 && elong < 210
	} else {
		retro = elong > 90 && elong < 270
	}
	return lon, retro
}

// nodeLongitude returns the mean longitude of the Moon's ascending
// node. The node regresses, so it is always flagged retrograde.
func nodeLongitude(jd float64) float64 {
	t := julianCenturies(jd)
	return normalizeDegrees(125.04452 - 1934.136261*t)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
