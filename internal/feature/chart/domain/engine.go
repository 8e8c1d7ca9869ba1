package domain

import (
	"natal_backend/internal/feature/chart/domain/entity"
)

// Engine computes natal charts from birth data. It performs no I/O,
// holds no mutable state after construction, and is safe for
// concurrent use. Identical inputs always produce identical charts,
// documents and hashes.
type Engine struct {
	tables  Tables
	planets map[entity.Body]PlanetRule
}

// NewEngine builds an engine over the given tables. The tables are
// validated once here so ComputeChart never has to.
func NewEngine(tables Tables) (*Engine, error) {
	if err := tables.validate(); err != nil {
		return nil, err
	}
	planets := make(map[entity.Body]PlanetRule, len(tables.Planets))
	for _, p := range tables.Planets {
		planets[p.Body] = p
	}
	return &Engine{tables: tables, planets: planets}, nil
}

// ComputeChart assembles the complete chart for in, or fails with an
// AssemblyError naming the stage that rejected the input. A chart is
// returned fully assembled or not at all.
func (e *Engine) ComputeChart(in entity.BirthInput) (entity.Chart, error) {
	utc, err := ResolveInstant(in)
	if err != nil {
		return entity.Chart{}, assemblyFailed("time normalization", err)
	}
	jd := JulianDay(utc)

	asc, mc, cusps, err := houseWheel(jd, in.Latitude, in.Longitude)
	if err != nil {
		return entity.Chart{}, assemblyFailed("house calculation", err)
	}

	positions := e.positions(jd)
	for i := range positions {
		positions[i].House = houseFor(positions[i].Longitude, cusps)
	}

	var houses [12]entity.HouseCusp
	for i, lon := range cusps {
		houses[i] = entity.HouseCusp{
			House:      i + 1,
			Longitude:  lon,
			Sign:       signFor(lon),
			SignDegree: signDegree(lon),
		}
	}

	chart := entity.Chart{
		Input:     in,
		UTC:       utc,
		JulianDay: jd,
		Ascendant: asc,
		Midheaven: mc,
		Positions: positions,
		Houses:    houses,
		Aspects:   detectAspects(positions, e.tables.Aspects),
	}

	document, err := EncodeDocument(chart)
	if err != nil {
		return entity.Chart{}, assemblyFailed("canonical serialization", err)
	}
	chart.Hash = ChartHash(document)
	return chart, nil
}

// positions computes the ecliptic placement of all eleven bodies in
// canonical order. House assignment happens later, once the wheel is
// known.
func (e *Engine) positions(jd float64) []entity.Position {
	sun := sunLongitude(jd)
	out := make([]entity.Position, 0, len(entity.Bodies))
	place := func(b entity.Body, lon float64, retro bool) {
		out = append(out, entity.Position{
			Body:       b,
			Longitude:  lon,
			Sign:       signFor(lon),
			SignDegree: signDegree(lon),
			Retrograde: retro,
		})
	}
	for _, b := range entity.Bodies {
		switch b {
		case entity.Sun:
			place(b, sun, false)
		case entity.Moon:
			place(b, moonLongitude(jd), false)
		case entity.NorthNode:
			place(b, nodeLongitude(jd), true)
		default:
			lon, retro := planetLongitude(jd, e.planets[b], sun)
			place(b, lon, retro)
		}
	}
	return out
}
