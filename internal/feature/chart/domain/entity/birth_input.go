package entity

import "fmt"

// BirthInput carries the raw facts a natal chart is computed from.
// Values are held exactly as supplied; validation happens in the
// calculation engine so that every consumer sees the same rules.
type BirthInput struct {
	Name      string  // Subject name, included verbatim in the chart document
	Year      int     // Calendar year of birth (local)
	Month     int     // 1..12
	Day       int     // 1..31, validated against the month
	Hour      int     // 0..23 local wall clock
	Minute    int     // 0..59
	Timezone  string  // IANA zone name, "UTC", or fixed offset "+HH:MM"/"-HH:MM"
	Latitude  float64 // Degrees north, [-90, 90]
	Longitude float64 // Degrees east, [-180, 180]
}

// DateString returns the local birth date as "YYYY-MM-DD".
func (b BirthInput) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
}

// TimeString returns the local birth time as "HH:MM".
func (b BirthInput) TimeString() string {
	return fmt.Sprintf("%02d:%02d", b.Hour, b.Minute)
}
