package usecase

import (
	"encoding/json"
	"fmt"
)

// ChartSummary is the reading feature's view of a stored chart document.
// Field names follow the canonical document produced by the chart engine.
type ChartSummary struct {
	Ascendant float64           `json:"ascendant"`
	Midheaven float64           `json:"midheaven"`
	JulianDay float64           `json:"julian_day"`
	UTC       string            `json:"utc"`
	Birth     BirthSummary      `json:"birth"`
	Positions []PositionSummary `json:"positions"`
	Houses    []HouseSummary    `json:"houses"`
	Aspects   []AspectSummary   `json:"aspects"`
	Summary   Headline          `json:"summary"`
}

// BirthSummary echoes the birth data block of the document.
type BirthSummary struct {
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PositionSummary is one ecliptic body placement.
type PositionSummary struct {
	Body       string  `json:"body"`
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	SignDegree float64 `json:"sign_degree"`
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
}

// HouseSummary is one house cusp placement.
type HouseSummary struct {
	House      int     `json:"house"`
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	SignDegree float64 `json:"sign_degree"`
}

// AspectSummary is one angular relationship between two bodies.
type AspectSummary struct {
	BodyA      string  `json:"body_a"`
	BodyB      string  `json:"body_b"`
	Type       string  `json:"type"`
	Separation float64 `json:"separation"`
	Orb        float64 `json:"orb"`
}

// ElementTally counts placements per classical element.
type ElementTally struct {
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
	Water int `json:"water"`
}

// Headline carries the big-three signs and the element balance.
type Headline struct {
	SunSign    string       `json:"sun_sign"`
	MoonSign   string       `json:"moon_sign"`
	RisingSign string       `json:"rising_sign"`
	Elements   ElementTally `json:"elements"`
}

// ParseDocument decodes a stored canonical chart document.
func ParseDocument(doc []byte) (ChartSummary, error) {
	var s ChartSummary
	if err := json.Unmarshal(doc, &s); err != nil {
		return ChartSummary{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if s.Summary.SunSign == "" || len(s.Positions) == 0 {
		return ChartSummary{}, fmt.Errorf("%w: missing summary or positions", ErrMalformedDocument)
	}
	return s, nil
}

// FormattedPosition renders the placement as integer degrees and arcminutes
// within its sign, e.g. `24° 39' Taurus ℞`.
func (p PositionSummary) FormattedPosition() string {
	deg := int(p.SignDegree)
	min := int((p.SignDegree - float64(deg)) * 60)
	s := fmt.Sprintf("%d° %d' %s", deg, min, p.Sign)
	if p.Retrograde {
		s += " ℞"
	}
	return s
}

// Strength grades the aspect by orb tightness.
func (a AspectSummary) Strength() string {
	switch {
	case a.Orb <= 1.0:
		return "Exact"
	case a.Orb <= 3.0:
		return "Strong"
	case a.Orb <= 5.0:
		return "Moderate"
	default:
		return "Weak"
	}
}
