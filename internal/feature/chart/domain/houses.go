package domain

import (
	"fmt"
	"math"
)

// validateLocation rejects coordinates outside the geographic range.
func validateLocation(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidLocation, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidLocation, lon)
	}
	return nil
}

// ascendant returns the ecliptic longitude rising at the eastern
// horizon for the given instant and place, from the local sidereal
// angle and the obliquity of the ecliptic.
func ascendant(jd, lat, lon float64) float64 {
	t := julianCenturies(jd)
	theta := normalizeDegrees(280.46061837 + 360.98564736629*(jd-epochJ2000) + lon)
	eps := radians(23.4393 - 0.0130*t)
	lst := radians(theta)
	phi := radians(lat)

	y := -math.Cos(lst)
	x := math.Sin(lst)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)
	return normalizeDegrees(degrees(math.Atan2(y, x)) + 180)
}

// houseWheel computes the Ascendant, Midheaven and the twelve equal
// house cusps: cusp i sits 30*(i-1) degrees past the Ascendant.
func houseWheel(jd, lat, lon float64) (asc, mc float64, cusps [12]float64, err error) {
	if err = validateLocation(lat, lon); err != nil {
		return 0, 0, cusps, err
	}
	asc = ascendant(jd, lat, lon)
	mc = normalizeDegrees(asc + 270)
	for i := 0; i < 12; i++ {
		cusps[i] = normalizeDegrees(asc + float64(i)*30)
	}
	return asc, mc, cusps, nil
}
