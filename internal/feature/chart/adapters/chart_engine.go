package adapters

import (
	"context"

	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
	"natal_backend/internal/feature/chart/usecase"
)

// chartEngine はChartCalculatorインターフェースのドメインエンジン実装です。
// 計算は全てプロセス内で完結します。
type chartEngine struct {
	engine *domain.Engine
}

// chartEngineがChartCalculatorを実装していることをコンパイル時に検証します。
var _ usecase.ChartCalculator = (*chartEngine)(nil)

// NewChartCalculator は指定されたエンジンでchartEngineの新しいインスタンスを生成します。
func NewChartCalculator(engine *domain.Engine) *chartEngine {
	return &chartEngine{engine: engine}
}

// Compute は出生情報からネイタルチャートを計算します。
func (c *chartEngine) Compute(ctx context.Context, input entity.BirthInput) (entity.Chart, error) {
	return c.engine.ComputeChart(input)
}
