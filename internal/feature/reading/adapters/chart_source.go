// Package adapters はreadingフィーチャーの外部接続実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	chartentity "natal_backend/internal/feature/chart/domain/entity"
	chartusecase "natal_backend/internal/feature/chart/usecase"
	"natal_backend/internal/feature/reading/usecase"
)

// ChartProvider は保存済みチャート記録の取得を抽象化します。
// chartフィーチャーのユースケースがこれを満たします。
type ChartProvider interface {
	DocumentByOrder(ctx context.Context, orderID string) (*chartentity.ChartRecord, error)
}

// chartSource はchartフィーチャーをreadingのChartSourceポートに適合させます。
// フィーチャー間の依存はこのアダプター一箇所に閉じ込めます。
type chartSource struct {
	charts ChartProvider
}

// chartSourceがChartSourceを実装していることをコンパイル時に検証します。
var _ usecase.ChartSource = (*chartSource)(nil)

// NewChartSource はchartSourceの新しいインスタンスを生成します。
func NewChartSource(charts ChartProvider) *chartSource {
	return &chartSource{charts: charts}
}

// DocumentByOrder は注文に紐づくチャート文書とそのハッシュを返します。
// chartフィーチャーのエラーをreadingフィーチャーの語彙に写像します。
func (s *chartSource) DocumentByOrder(ctx context.Context, orderID string) ([]byte, string, error) {
	record, err := s.charts.DocumentByOrder(ctx, orderID)
	switch {
	case errors.Is(err, chartusecase.ErrOrderNotFound):
		return nil, "", usecase.ErrOrderNotFound
	case errors.Is(err, chartusecase.ErrChartNotFound):
		return nil, "", usecase.ErrChartNotAttached
	case err != nil:
		return nil, "", fmt.Errorf("failed to load chart document: %w", err)
	}
	return record.Document, record.Hash, nil
}
