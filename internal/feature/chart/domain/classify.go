package domain

import (
	"math"

	"natal_backend/internal/feature/chart/domain/entity"
)

// signFor maps an ecliptic longitude in [0, 360) to its zodiac sign.
func signFor(lon float64) entity.ZodiacSign {
	return entity.ZodiacSign(int(lon/30) % 12)
}

// signDegree returns how far into its sign a longitude sits, [0, 30).
func signDegree(lon float64) float64 {
	return math.Mod(lon, 30)
}

// houseFor assigns a longitude to a house on the wheel. Intervals are
// half-open and lower-inclusive: a body exactly on a cusp belongs to
// the house that starts there. Exactly one interval matches because
// the twelve cusps partition the circle.
func houseFor(lon float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		lo := cusps[i]
		hi := cusps[(i+1)%12]
		if lo <= hi {
			if lon >= lo && lon < hi {
				return i + 1
			}
		} else if lon >= lo || lon < hi {
			// Interval wraps through 0 Aries.
			return i + 1
		}
	}
	// Unreachable for normalized input; house 1 keeps the result total.
	return 1
}
