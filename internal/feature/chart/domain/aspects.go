package domain

import (
	"math"
	"sort"

	"natal_backend/internal/feature/chart/domain/entity"
)

// separation returns the angular distance between two longitudes,
// folded to [0, 180].
func separation(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// classifyAspect matches a separation against the rules in priority
// order. Boundaries are inclusive: an orb exactly at the allowance
// still counts.
func classifyAspect(sep float64, rules []AspectRule) (AspectRule, float64, bool) {
	for _, r := range rules {
		orb := math.Abs(sep - r.Angle)
		if orb <= r.Orb {
			return r, orb, true
		}
	}
	return AspectRule{}, 0, false
}

// detectAspects scans every unordered body pair once, in canonical
// body order, and returns the matches sorted by orb (tightest first),
// with the body pair as tie-breaker.
func detectAspects(positions []entity.Position, rules []AspectRule) []entity.Aspect {
	var out []entity.Aspect
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			sep := separation(positions[i].Longitude, positions[j].Longitude)
			rule, orb, ok := classifyAspect(sep, rules)
			if !ok {
				continue
			}
			out = append(out, entity.Aspect{
				BodyA:      positions[i].Body,
				BodyB:      positions[j].Body,
				Type:       rule.Type,
				Separation: sep,
				Orb:        orb,
			})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Orb != out[b].Orb {
			return out[a].Orb < out[b].Orb
		}
		if out[a].BodyA != out[b].BodyA {
			return out[a].BodyA < out[b].BodyA
		}
		return out[a].BodyB < out[b].BodyB
	})
	return out
}
