package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natal_backend/internal/feature/chart/domain/entity"
)

func writeTables(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const validTablesYAML = `
aspects:
  - {type: Conjunction, angle: 0, orb: 10}
  - {type: Opposition, angle: 180, orb: 10}
planets:
  - {body: Mercury, base_longitude: 252.25, century_rate: 149472.67, semi_major_au: 0.387}
  - {body: Venus, base_longitude: 181.98, century_rate: 58517.82, semi_major_au: 0.723}
  - {body: Mars, base_longitude: 355.43, century_rate: 19140.30, semi_major_au: 1.524}
  - {body: Jupiter, base_longitude: 34.35, century_rate: 3034.91, semi_major_au: 5.203}
  - {body: Saturn, base_longitude: 50.08, century_rate: 1222.11, semi_major_au: 9.555}
  - {body: Uranus, base_longitude: 314.06, century_rate: 428.47, semi_major_au: 19.22}
  - {body: Neptune, base_longitude: 304.35, century_rate: 218.49, semi_major_au: 30.11}
  - {body: Pluto, base_longitude: 238.93, century_rate: 145.21, semi_major_au: 39.48}
`

func TestLoadTablesFile(t *testing.T) {
	t.Run("success: full override", func(t *testing.T) {
		tables, err := LoadTablesFile(writeTables(t, validTablesYAML))
		require.NoError(t, err)

		require.Len(t, tables.Aspects, 2)
		assert.Equal(t, entity.Conjunction, tables.Aspects[0].Type)
		assert.Equal(t, 10.0, tables.Aspects[0].Orb)

		require.Len(t, tables.Planets, 8)
		assert.Equal(t, entity.Mercury, tables.Planets[0].Body)

		eng, err := NewEngine(tables)
		require.NoError(t, err)
		chart, err := eng.ComputeChart(baseInput())
		require.NoError(t, err)
		// Only conjunctions and oppositions can match now.
		for _, a := range chart.Aspects {
			assert.Contains(t, []entity.AspectType{entity.Conjunction, entity.Opposition}, a.Type)
		}
	})

	t.Run("failure: missing file", func(t *testing.T) {
		_, err := LoadTablesFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("failure: not yaml", func(t *testing.T) {
		_, err := LoadTablesFile(writeTables(t, "{{{"))
		assert.Error(t, err)
	})

	t.Run("failure: unknown planet name", func(t *testing.T) {
		bad := validTablesYAML + `  - {body: Vulcan, base_longitude: 1, century_rate: 1, semi_major_au: 0.1}` + "\n"
		_, err := LoadTablesFile(writeTables(t, bad))
		assert.Error(t, err)
	})

	t.Run("failure: missing planets", func(t *testing.T) {
		_, err := LoadTablesFile(writeTables(t, `
aspects:
  - {type: Conjunction, angle: 0, orb: 8}
planets:
  - {body: Mercury, base_longitude: 252.25, century_rate: 149472.67, semi_major_au: 0.387}
`))
		assert.Error(t, err)
	})
}

func TestTablesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"failure: no aspect rules", func(tb *Tables) { tb.Aspects = nil }},
		{"failure: unknown aspect type", func(tb *Tables) { tb.Aspects[0].Type = "Quintile" }},
		{"failure: negative orb", func(tb *Tables) { tb.Aspects[0].Orb = -2 }},
		{"failure: angle out of range", func(tb *Tables) { tb.Aspects[0].Angle = 181 }},
		{"failure: duplicate planet", func(tb *Tables) { tb.Planets[1] = tb.Planets[0] }},
		{"failure: luminary in planet table", func(tb *Tables) { tb.Planets[0].Body = entity.Sun }},
		{"failure: non-positive semi-major axis", func(tb *Tables) { tb.Planets[0].SemiMajorAU = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			assert.Error(t, tables.validate())
		})
	}

	t.Run("success: defaults validate", func(t *testing.T) {
		assert.NoError(t, DefaultTables().validate())
	})
}
