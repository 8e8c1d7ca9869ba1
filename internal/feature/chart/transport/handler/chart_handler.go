// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"natal_backend/internal/api"
	"natal_backend/internal/feature/chart/domain"
	"natal_backend/internal/feature/chart/domain/entity"
	"natal_backend/internal/feature/chart/usecase"
)

// ChartUsecase はチャート操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ChartUsecase interface {
	// Preview は出生情報からチャートを計算して返します。永続化は行いません。
	Preview(ctx context.Context, q usecase.BirthQuery) (entity.Chart, error)
	// Attach はチャートを計算し、指定された注文に紐づけて永続化します。
	Attach(ctx context.Context, orderID string, q usecase.BirthQuery) (*entity.ChartRecord, error)
	// DocumentByOrder は注文に紐づくチャート記録を取得します。
	DocumentByOrder(ctx context.Context, orderID string) (*entity.ChartRecord, error)
}

// ChartHandler はチャート操作のHTTPリクエストを処理します。
// ChartUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type ChartHandler struct {
	charts ChartUsecase
}

// NewChartHandler はChartHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からChartUsecaseを注入します。
func NewChartHandler(charts ChartUsecase) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// PreviewChart はチャートプレビューAPIエンドポイントを処理します。
// - リクエストJSONをBirthDetailsにバインド
// - バリデーションエラー・入力不正時は400を返却
// - 地名が解決できない場合は404を返却
// - 成功時はサイン要約とハッシュ付きで200を返却
func (h *ChartHandler) PreviewChart(c *gin.Context) {
	var req api.BirthDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("preview validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	chart, err := h.charts.Preview(c.Request.Context(), birthQuery(req))
	if err != nil {
		status, msg := chartErrorStatus(err)
		logChartError("preview failed", status, err, c)
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, api.PreviewChartResponse{
		Success: true,
		Chart:   previewOf(chart),
	})
}

// AttachChart はチャート添付APIエンドポイントを処理します。
// - リクエストJSONをBirthDetailsにバインド
// - バリデーションエラー・入力不正時は400を返却
// - 注文が存在しない場合は404を返却
// - 既にチャートが添付済みの場合は409を返却
// - 成功時は正規化ドキュメント付きで201を返却
func (h *ChartHandler) AttachChart(c *gin.Context) {
	orderID := c.Param("id")

	var req api.BirthDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("attach validation failed", "error", err, "order_id", orderID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	record, err := h.charts.Attach(c.Request.Context(), orderID, birthQuery(req))
	if err != nil {
		status, msg := chartErrorStatus(err)
		logChartError("attach failed", status, err, c)
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	slog.Info("chart attached", "order_id", record.OrderID, "chart_hash", record.Hash)
	c.JSON(http.StatusCreated, envelopeOf(record))
}

// GetChart はチャート取得APIエンドポイントを処理します。
// - 注文またはチャートが存在しない場合は404を返却
// - 成功時は保存済みの正規化ドキュメント付きで200を返却
func (h *ChartHandler) GetChart(c *gin.Context) {
	orderID := c.Param("id")

	record, err := h.charts.DocumentByOrder(c.Request.Context(), orderID)
	if err != nil {
		status, msg := chartErrorStatus(err)
		logChartError("chart lookup failed", status, err, c)
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, envelopeOf(record))
}

// birthQuery はワイヤー形式の出生情報をユースケース入力に変換します。
func birthQuery(req api.BirthDetails) usecase.BirthQuery {
	return usecase.BirthQuery{
		Name:     req.Name,
		Date:     req.BirthDate,
		Time:     req.BirthTime,
		Timezone: req.Timezone,
		Lat:      req.Lat,
		Lon:      req.Lon,
		Place:    req.Place,
	}
}

// previewOf はチャートからプレビュー要約を組み立てます。
func previewOf(chart entity.Chart) api.PreviewChart {
	p := api.PreviewChart{
		SunSign:      chart.SunSign().String(),
		MoonSign:     chart.MoonSign().String(),
		RisingSign:   chart.RisingSign().String(),
		RisingDegree: round2(math.Mod(chart.Ascendant, 30)),
		ChartHash:    chart.Hash,
	}
	if pos, ok := chart.PositionOf(entity.Sun); ok {
		p.SunDegree = round2(pos.SignDegree)
	}
	if pos, ok := chart.PositionOf(entity.Moon); ok {
		p.MoonDegree = round2(pos.SignDegree)
	}
	return p
}

// envelopeOf は保存済みチャート記録からレスポンスエンベロープを組み立てます。
func envelopeOf(record *entity.ChartRecord) api.ChartEnvelope {
	return api.ChartEnvelope{
		OrderID:   record.OrderID,
		ChartHash: record.Hash,
		Chart:     record.Document,
	}
}

// chartErrorStatus はチャート操作のエラーをHTTPステータスと公開メッセージに変換します。
func chartErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeInput),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, usecase.ErrLocationRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrChartNotFound),
		errors.Is(err, usecase.ErrPlaceNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrChartAlreadyExists):
		return http.StatusConflict, err.Error()
	default:
		// 内部エラーの詳細は公開しない
		return http.StatusInternalServerError, "internal server error"
	}
}

// logChartError はステータスに応じたレベルでエラーを記録します。
func logChartError(msg string, status int, err error, c *gin.Context) {
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err, "remote_addr", c.ClientIP())
		return
	}
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
}

// round2 は小数第2位に丸めます。レスポンスの度数表示用です。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
