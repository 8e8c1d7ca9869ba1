// Package entity defines the domain models for the chart feature.
package entity

// Body identifies a celestial body placed on a natal chart.
// The declared order is the canonical iteration order for positions,
// aspect pairing and serialized documents.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	NorthNode
)

// Bodies lists every charted body in canonical order.
var Bodies = [...]Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, NorthNode,
}

var bodyNames = [...]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn",
	"Uranus", "Neptune", "Pluto", "North Node",
}

// String returns the display name of the body (e.g. "Sun", "North Node").
func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return "Unknown"
	}
	return bodyNames[b]
}
