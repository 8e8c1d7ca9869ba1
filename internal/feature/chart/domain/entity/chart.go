package entity

import "time"

// Position places one body on the ecliptic and inside the house wheel.
type Position struct {
	Body       Body
	Longitude  float64    // Ecliptic longitude, [0, 360)
	Sign       ZodiacSign // Sign containing Longitude
	SignDegree float64    // Degrees into the sign, [0, 30)
	House      int        // 1..12
	Retrograde bool
}

// HouseCusp marks where a house begins on the ecliptic.
type HouseCusp struct {
	House      int // 1..12
	Longitude  float64
	Sign       ZodiacSign
	SignDegree float64
}

// AspectType names a recognized angular relationship between two bodies.
type AspectType string

const (
	Conjunction AspectType = "Conjunction"
	Sextile     AspectType = "Sextile"
	Square      AspectType = "Square"
	Trine       AspectType = "Trine"
	Opposition  AspectType = "Opposition"
)

// Aspect records a detected angular relationship. BodyA always precedes
// BodyB in canonical body order, so each unordered pair appears once.
type Aspect struct {
	BodyA      Body
	BodyB      Body
	Type       AspectType
	Separation float64 // Angular separation, [0, 180]
	Orb        float64 // Distance from the exact aspect angle
}

// ElementBalance tallies the charted bodies by their sign's element.
type ElementBalance struct {
	Fire  int
	Earth int
	Air   int
	Water int
}

// Chart is the complete computed natal chart. It is a pure function of
// its BirthInput: identical inputs yield an identical chart and hash.
// Charts are treated as immutable once assembled.
type Chart struct {
	Input     BirthInput
	UTC       time.Time // Birth instant resolved to UTC
	JulianDay float64
	Ascendant float64 // Ecliptic longitude of the first house cusp
	Midheaven float64
	Positions []Position    // One per entry in Bodies, canonical order
	Houses    [12]HouseCusp // Equal houses anchored at the Ascendant
	Aspects   []Aspect      // Sorted by orb, then body pair
	Hash      string        // Hex SHA-256 of the canonical document
}

// PositionOf returns the placement of the given body.
func (c Chart) PositionOf(b Body) (Position, bool) {
	for _, p := range c.Positions {
		if p.Body == b {
			return p, true
		}
	}
	return Position{}, false
}

// SunSign returns the zodiac sign holding the Sun.
func (c Chart) SunSign() ZodiacSign {
	p, _ := c.PositionOf(Sun)
	return p.Sign
}

// MoonSign returns the zodiac sign holding the Moon.
func (c Chart) MoonSign() ZodiacSign {
	p, _ := c.PositionOf(Moon)
	return p.Sign
}

// RisingSign returns the sign on the Ascendant.
func (c Chart) RisingSign() ZodiacSign {
	return c.Houses[0].Sign
}

// Elements tallies the positions by elemental group.
func (c Chart) Elements() ElementBalance {
	var bal ElementBalance
	for _, p := range c.Positions {
		switch p.Sign.Element() {
		case "Fire":
			bal.Fire++
		case "Earth":
			bal.Earth++
		case "Air":
			bal.Air++
		case "Water":
			bal.Water++
		}
	}
	return bal
}
