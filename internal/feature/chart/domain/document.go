package domain

import (
	"time"

	"natal_backend/internal/feature/chart/domain/entity"
)

// BuildDocument returns the chart's canonical document tree. The field
// set and names are the stable contract consumed by persistence, the
// report renderer and external clients; changing them changes every
// chart hash.
func BuildDocument(c entity.Chart) map[string]any {
	positions := make([]any, 0, len(c.Positions))
	for _, p := range c.Positions {
		positions = append(positions, map[string]any{
			"body":        p.Body.String(),
			"house":       p.House,
			"longitude":   p.Longitude,
			"retrograde":  p.Retrograde,
			"sign":        p.Sign.String(),
			"sign_degree": p.SignDegree,
		})
	}

	houses := make([]any, 0, len(c.Houses))
	for _, h := range c.Houses {
		houses = append(houses, map[string]any{
			"house":       h.House,
			"longitude":   h.Longitude,
			"sign":        h.Sign.String(),
			"sign_degree": h.SignDegree,
		})
	}

	aspects := make([]any, 0, len(c.Aspects))
	for _, a := range c.Aspects {
		aspects = append(aspects, map[string]any{
			"body_a":     a.BodyA.String(),
			"body_b":     a.BodyB.String(),
			"orb":        a.Orb,
			"separation": a.Separation,
			"type":       string(a.Type),
		})
	}

	bal := c.Elements()
	return map[string]any{
		"ascendant":  c.Ascendant,
		"aspects":    aspects,
		"birth":      birthDocument(c.Input),
		"houses":     houses,
		"julian_day": c.JulianDay,
		"midheaven":  c.Midheaven,
		"positions":  positions,
		"summary": map[string]any{
			"elements": map[string]any{
				"air":   bal.Air,
				"earth": bal.Earth,
				"fire":  bal.Fire,
				"water": bal.Water,
			},
			"moon_sign":   c.MoonSign().String(),
			"rising_sign": c.RisingSign().String(),
			"sun_sign":    c.SunSign().String(),
		},
		"utc": c.UTC.UTC().Format(time.RFC3339),
	}
}

func birthDocument(in entity.BirthInput) map[string]any {
	return map[string]any{
		"date":      in.DateString(),
		"latitude":  in.Latitude,
		"longitude": in.Longitude,
		"name":      in.Name,
		"time":      in.TimeString(),
		"timezone":  in.Timezone,
	}
}

// EncodeDocument renders the canonical byte form of the chart document.
// The chart hash is the SHA-256 of exactly these bytes.
func EncodeDocument(c entity.Chart) ([]byte, error) {
	return MarshalCanonical(BuildDocument(c))
}
