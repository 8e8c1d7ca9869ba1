package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"natal_backend/internal/feature/chart/domain/entity"
)

// AspectRule defines one recognized aspect. Rules are matched in slice
// order and the first hit wins, so tighter or more significant aspects
// must come first.
type AspectRule struct {
	Type  entity.AspectType `yaml:"type"`
	Angle float64           `yaml:"angle"` // Exact aspect angle, degrees
	Orb   float64           `yaml:"orb"`   // Allowed deviation, degrees
}

// PlanetRule holds the linear mean-longitude elements for one planet.
type PlanetRule struct {
	Body          entity.Body `yaml:"-"`
	Name          string      `yaml:"body"`
	BaseLongitude float64     `yaml:"base_longitude"` // Mean longitude at J2000.0
	CenturyRate   float64     `yaml:"century_rate"`   // Degrees per Julian century
	SemiMajorAU   float64     `yaml:"semi_major_au"`  // Orbit size, AU
}

// Tables carries every tunable constant of the engine. Engines hold
// their Tables by value; nothing here is mutated after construction.
type Tables struct {
	Aspects []AspectRule `yaml:"aspects"`
	Planets []PlanetRule `yaml:"planets"`
}

// DefaultTables returns the built-in aspect and planet tables.
func DefaultTables() Tables {
	return Tables{
		Aspects: []AspectRule{
			{Type: entity.Conjunction, Angle: 0, Orb: 8},
			{Type: entity.Sextile, Angle: 60, Orb: 6},
			{Type: entity.Square, Angle: 90, Orb: 8},
			{Type: entity.Trine, Angle: 120, Orb: 8},
			{Type: entity.Opposition, Angle: 180, Orb: 8},
		},
		Planets: []PlanetRule{
			{Body: entity.Mercury, Name: "Mercury", BaseLongitude: 252.25, CenturyRate: 149472.67, SemiMajorAU: 0.387},
			{Body: entity.Venus, Name: "Venus", BaseLongitude: 181.98, CenturyRate: 58517.82, SemiMajorAU: 0.723},
			{Body: entity.Mars, Name: "Mars", BaseLongitude: 355.43, CenturyRate: 19140.30, SemiMajorAU: 1.524},
			{Body: entity.Jupiter, Name: "Jupiter", BaseLongitude: 34.35, CenturyRate: 3034.91, SemiMajorAU: 5.203},
			{Body: entity.Saturn, Name: "Saturn", BaseLongitude: 50.08, CenturyRate: 1222.11, SemiMajorAU: 9.555},
			{Body: entity.Uranus, Name: "Uranus", BaseLongitude: 314.06, CenturyRate: 428.47, SemiMajorAU: 19.22},
			{Body: entity.Neptune, Name: "Neptune", BaseLongitude: 304.35, CenturyRate: 218.49, SemiMajorAU: 30.11},
			{Body: entity.Pluto, Name: "Pluto", BaseLongitude: 238.93, CenturyRate: 145.21, SemiMajorAU: 39.48},
		},
	}
}

// LoadTablesFile reads an engine table override from a YAML file.
// The file must define the full set of tables; partial overrides are
// not merged with the defaults.
func LoadTablesFile(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables file: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("parse tables file: %w", err)
	}
	for i := range t.Planets {
		body, ok := planetByName(t.Planets[i].Name)
		if !ok {
			return Tables{}, fmt.Errorf("tables file: unknown planet %q", t.Planets[i].Name)
		}
		t.Planets[i].Body = body
	}
	if err := t.validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func planetByName(name string) (entity.Body, bool) {
	for _, b := range entity.Bodies {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

var knownAspects = map[entity.AspectType]struct{}{
	entity.Conjunction: {},
	entity.Sextile:     {},
	entity.Square:      {},
	entity.Trine:       {},
	entity.Opposition:  {},
}

func (t Tables) validate() error {
	if len(t.Aspects) == 0 {
		return fmt.Errorf("tables: no aspect rules")
	}
	for _, a := range t.Aspects {
		if _, ok := knownAspects[a.Type]; !ok {
			return fmt.Errorf("tables: unknown aspect type %q", a.Type)
		}
		if a.Angle < 0 || a.Angle > 180 {
			return fmt.Errorf("tables: aspect %s angle %g out of range", a.Type, a.Angle)
		}
		if a.Orb <= 0 {
			return fmt.Errorf("tables: aspect %s orb must be positive", a.Type)
		}
	}
	if len(t.Planets) != 8 {
		return fmt.Errorf("tables: expected 8 planet entries, got %d", len(t.Planets))
	}
	seen := make(map[entity.Body]struct{}, len(t.Planets))
	for _, p := range t.Planets {
		if p.Body == entity.Sun || p.Body == entity.Moon || p.Body == entity.NorthNode {
			return fmt.Errorf("tables: %s is not table-driven", p.Body)
		}
		if _, dup := seen[p.Body]; dup {
			return fmt.Errorf("tables: duplicate planet %s", p.Body)
		}
		seen[p.Body] = struct{}{}
		if p.SemiMajorAU <= 0 {
			return fmt.Errorf("tables: planet %s semi-major axis must be positive", p.Body)
		}
	}
	return nil
}
