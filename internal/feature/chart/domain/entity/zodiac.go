package entity

// ZodiacSign identifies one of the twelve 30-degree segments of the
// ecliptic, starting at Aries (0 degrees).
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signElements = [...]string{
	"Fire", "Earth", "Air", "Water", "Fire", "Earth",
	"Air", "Water", "Fire", "Earth", "Air", "Water",
}

var signModalities = [...]string{
	"Cardinal", "Fixed", "Mutable", "Cardinal", "Fixed", "Mutable",
	"Cardinal", "Fixed", "Mutable", "Cardinal", "Fixed", "Mutable",
}

// String returns the sign's display name (e.g. "Taurus").
func (s ZodiacSign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return "Unknown"
	}
	return signNames[s]
}

// Element returns the sign's classical element: Fire, Earth, Air or Water.
func (s ZodiacSign) Element() string {
	if s < 0 || int(s) >= len(signElements) {
		return "Unknown"
	}
	return signElements[s]
}

// Modality returns the sign's modality: Cardinal, Fixed or Mutable.
func (s ZodiacSign) Modality() string {
	if s < 0 || int(s) >= len(signModalities) {
		return "Unknown"
	}
	return signModalities[s]
}
