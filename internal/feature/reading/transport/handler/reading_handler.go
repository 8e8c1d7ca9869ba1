// Package handler はreadingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"natal_backend/internal/api"
	"natal_backend/internal/feature/reading/domain/entity"
	"natal_backend/internal/feature/reading/usecase"
)

// ReadingUsecase は読み物操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ReadingUsecase interface {
	// BuildReading は注文に紐づくチャート文書を解釈し、セクション列に組み立てます。
	BuildReading(ctx context.Context, orderID string) (*entity.Reading, error)
}

// ReadingHandler は読み物操作のHTTPリクエストを処理します。
// ReadingUsecaseインターフェースに依存し、JSONレスポンスを処理します。
type ReadingHandler struct {
	readings ReadingUsecase
}

// NewReadingHandler はReadingHandlerの新しいインスタンスを生成します。
func NewReadingHandler(readings ReadingUsecase) *ReadingHandler {
	return &ReadingHandler{readings: readings}
}

// GetReading は読み物取得APIエンドポイントを処理します。
// - 注文が存在しない、またはチャート未添付の場合は404を返却
// - 成功時はセクション列付きで200を返却
func (h *ReadingHandler) GetReading(c *gin.Context) {
	orderID := c.Param("id")

	reading, err := h.readings.BuildReading(c.Request.Context(), orderID)
	if err != nil {
		status, msg := readingErrorStatus(err)
		logReadingError("reading build failed", status, err, c)
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	slog.Info("reading assembled", "order_id", orderID, "source", reading.Source, "sections", len(reading.Sections))
	c.JSON(http.StatusOK, readingResponse(reading))
}

// readingResponse は読み物エンティティをワイヤー形式に変換します。
func readingResponse(reading *entity.Reading) api.ReadingResponse {
	sections := make([]api.ReadingSection, 0, len(reading.Sections))
	for _, s := range reading.Sections {
		sections = append(sections, api.ReadingSection{Key: s.Key, Title: s.Title, Body: s.Body})
	}
	return api.ReadingResponse{
		OrderID:   reading.OrderID,
		ChartHash: reading.ChartHash,
		Source:    reading.Source,
		Sections:  sections,
	}
}

// readingErrorStatus は読み物操作のエラーをHTTPステータスと公開メッセージに変換します。
func readingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrChartNotAttached):
		return http.StatusNotFound, err.Error()
	default:
		// 内部エラーの詳細は公開しない（文書破損を含む）
		return http.StatusInternalServerError, "internal server error"
	}
}

// logReadingError はステータスに応じたレベルでエラーを記録します。
func logReadingError(msg string, status int, err error, c *gin.Context) {
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err, "remote_addr", c.ClientIP())
		return
	}
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
}
