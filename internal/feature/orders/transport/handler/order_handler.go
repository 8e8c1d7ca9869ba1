// Package handler はordersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"natal_backend/internal/api"
	"natal_backend/internal/feature/orders/domain/entity"
	"natal_backend/internal/feature/orders/usecase"
)

// OrdersUsecase は注文操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type OrdersUsecase interface {
	// CreateOrder は注文を作成し、注文アクセストークンと共に返します。
	CreateOrder(ctx context.Context, planCode, customerEmail, customerName string) (*entity.Order, string, error)
	// GetOrder はIDで注文を取得します。
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	// ListPlans は購入可能なプランのカタログを返します。
	ListPlans() []entity.Plan
}

// OrderHandler は注文操作のHTTPリクエストを処理します。
type OrderHandler struct {
	orders OrdersUsecase
}

// NewOrderHandler はOrderHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からOrdersUsecaseを注入します。
func NewOrderHandler(orders OrdersUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder は注文作成APIエンドポイントを処理します。
// - リクエストJSONをCreateOrderRequestにバインド
// - バリデーションエラー・カタログ外プランは400を返却
// - 成功時はアクセストークン付きで201を返却
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req api.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("order validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	order, token, err := h.orders.CreateOrder(c.Request.Context(), req.Plan, req.CustomerEmail, req.CustomerName)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownPlan) {
			slog.Warn("order rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("order creation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("order created", "order_id", order.ID, "plan", order.Plan)

	resp := orderResponse(order)
	resp.AccessToken = token
	c.JSON(http.StatusCreated, resp)
}

// GetOrder は注文取得APIエンドポイントを処理します。
// - 注文が存在しない場合は404を返却
// - 成功時はアクセストークン抜きの注文情報で200を返却
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("order lookup failed", "error", err, "order_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// ListPlans はプランカタログAPIエンドポイントを処理します。常に200を返却します。
func (h *OrderHandler) ListPlans(c *gin.Context) {
	plans := h.orders.ListPlans()

	out := make([]api.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, api.PlanResponse{
			Code:        p.Code,
			Name:        p.Name,
			AmountCents: p.AmountCents,
			Currency:    p.Currency,
		})
	}

	c.JSON(http.StatusOK, out)
}

// orderResponse は注文エンティティをレスポンスDTOに変換します。
// 金額はカタログから引き直します。
func orderResponse(order *entity.Order) api.OrderResponse {
	resp := api.OrderResponse{
		OrderID:   order.ID,
		Plan:      order.Plan,
		CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	}
	if plan, ok := entity.PlanByCode(order.Plan); ok {
		resp.AmountCents = plan.AmountCents
		resp.Currency = plan.Currency
	}
	return resp
}
