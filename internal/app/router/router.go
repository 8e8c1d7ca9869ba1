package router

import (
	charthandler "natal_backend/internal/feature/chart/transport/handler"
	orderhandler "natal_backend/internal/feature/orders/transport/handler"
	readinghandler "natal_backend/internal/feature/reading/transport/handler"
	"natal_backend/internal/platform/http/handler"
	"natal_backend/internal/platform/token"

	"github.com/gin-gonic/gin"
)

func NewRouter(orders *orderhandler.OrderHandler, charts *charthandler.ChartHandler,
	readings *readinghandler.ReadingHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 稼働確認用
	r.GET("/", handler.Status)
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 購入可能なプラン一覧
	r.GET("/api/plans", orders.ListPlans)
	// 注文作成（注文アクセストークン発行）
	r.POST("/api/orders", orders.CreateOrder)
	// 購入前のチャートプレビュー
	r.POST("/api/preview-chart", charts.PreviewChart)

	// 注文アクセストークン必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// token.OrderAccessRequired() ミドルウェアを適用
	// → リクエストヘッダーに注文アクセストークンが必要になる
	auth.Use(token.OrderAccessRequired())
	{
		auth.GET("/api/orders/:id", orders.GetOrder)
		auth.POST("/api/orders/:id/chart", charts.AttachChart)
		auth.GET("/api/orders/:id/chart", charts.GetChart)
		auth.GET("/api/orders/:id/reading", readings.GetReading)
	}

	return r
}
