package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
	"natal_backend/internal/shared/ratelimiter"
)

// ChartPreviewer は保存を伴わないチャート計算を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（batch）が定義します。
type ChartPreviewer interface {
	Preview(ctx context.Context, q BirthQuery) (entity.Chart, error)
}

// BatchOutcome は一括処理の集計結果です。
type BatchOutcome struct {
	Processed  int // 正常に処理できた行数
	Failed     int // エラーで読み飛ばした行数
	Mismatched int // 再計算でハッシュが一致しなかった行数（検証モードのみ）
}

// BatchUsecase は出生情報の一覧からチャートドキュメントを一括生成・検証するユースケースを定義します。
type BatchUsecase struct {
	charts      ChartPreviewer
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewBatchUsecase は新しい BatchUsecase を作成します。
func NewBatchUsecase(charts ChartPreviewer, rateLimiter ratelimiter.RateLimiterInterface) *BatchUsecase {
	return &BatchUsecase{charts: charts, rateLimiter: rateLimiter}
}

// generateOne は1件分の出生情報からチャートを計算し、正規化ドキュメントを返します。
func (bu *BatchUsecase) generateOne(ctx context.Context, q BirthQuery) ([]byte, error) {
	chart, err := bu.charts.Preview(ctx, q)
	if err != nil {
		return nil, err
	}
	return domain.EncodeDocument(chart)
}

// GenerateAll は出生情報の一覧からチャートドキュメントを一括生成します。
// 1行でエラーが発生しても処理を止めずにログに出力し、次の行を続けます。
// ジオコーディングAPIのレートリミットを考慮して、地名解決が必要な行の前にのみ待機します。
// 待機中にコンテキストがキャンセルされた場合は処理を打ち切り、残りの行を失敗として数えます。
func (bu *BatchUsecase) GenerateAll(ctx context.Context, queries []BirthQuery) ([][]byte, BatchOutcome) {
	docs := make([][]byte, 0, len(queries))
	var out BatchOutcome
	for i, q := range queries {
		// 座標付きの行は外部APIを呼ばないため待機不要
		if q.Lat == nil || q.Lon == nil {
			if err := bu.rateLimiter.WaitIfNeeded(ctx); err != nil {
				slog.Error("batch generation canceled while rate limited", "line", i+1, "error", err)
				out.Failed += len(queries) - i
				return docs, out
			}
		}
		doc, err := bu.generateOne(ctx, q)
		if err != nil {
			slog.Error("failed to generate chart", "line", i+1, "name", q.Name, "error", err)
			out.Failed++
			continue // 次の行へ
		}
		docs = append(docs, doc)
		out.Processed++
	}
	return docs, out
}

// verifyOne は保存済みドキュメントの出生情報からチャートを再計算し、
// ハッシュが元のドキュメントと一致するかを返します。
func (bu *BatchUsecase) verifyOne(ctx context.Context, document []byte) (bool, error) {
	var stored struct {
		Birth struct {
			Name      string  `json:"name"`
			Date      string  `json:"date"`
			Time      string  `json:"time"`
			Timezone  string  `json:"timezone"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"birth"`
	}
	if err := json.Unmarshal(document, &stored); err != nil {
		return false, fmt.Errorf("malformed chart document: %w", err)
	}

	q := BirthQuery{
		Name:     stored.Birth.Name,
		Date:     stored.Birth.Date,
		Time:     stored.Birth.Time,
		Timezone: stored.Birth.Timezone,
		Lat:      &stored.Birth.Latitude,
		Lon:      &stored.Birth.Longitude,
	}
	chart, err := bu.charts.Preview(ctx, q)
	if err != nil {
		return false, err
	}
	recomputed, err := domain.EncodeDocument(chart)
	if err != nil {
		return false, err
	}
	return domain.ChartHash(recomputed) == domain.ChartHash(document), nil
}

// VerifyAll は保存済みドキュメントの一覧を再計算し、ハッシュの一致を検証します。
// 1行の失敗では処理を止めず、集計結果で不一致・エラーの件数を報告します。
func (bu *BatchUsecase) VerifyAll(ctx context.Context, documents [][]byte) BatchOutcome {
	var out BatchOutcome
	for i, doc := range documents {
		match, err := bu.verifyOne(ctx, doc)
		if err != nil {
			slog.Error("failed to verify chart document", "line", i+1, "error", err)
			out.Failed++
			continue
		}
		if !match {
			slog.Error("chart document hash mismatch", "line", i+1)
			out.Mismatched++
			continue
		}
		out.Processed++
	}
	return out
}
