// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"natal_backend/internal/feature/chart/adapters"
	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/usecase"
	"natal_backend/internal/platform/cache"
)

// EnvKeyChartTablesFile is the environment variable naming a YAML override
// for the engine's planet and aspect tables.
const EnvKeyChartTablesFile = "CHART_TABLES_FILE"

// NewCalculator creates the chart calculation engine.
// If a Redis client is available, computed charts are memoized by input
// fingerprint; charts are pure functions of their input, so entries never expire.
func NewCalculator(rdb *redis.Client) (usecase.ChartCalculator, error) {
	tables := domain.DefaultTables()
	if path := os.Getenv(EnvKeyChartTablesFile); path != "" {
		t, err := domain.LoadTablesFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load chart tables from %s: %w", path, err)
		}
		tables = t
	}

	engine, err := domain.NewEngine(tables)
	if err != nil {
		return nil, err
	}

	calc := adapters.NewChartCalculator(engine)
	if rdb != nil {
		return cache.NewCachingChartCalculator(rdb, 0, calc, "charts"), nil
	}
	return calc, nil
}
