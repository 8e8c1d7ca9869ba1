package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	// tzdataが無い実行環境でもIANAタイムゾーンを解決できるようにする
	_ "time/tzdata"

	redisv9 "github.com/redis/go-redis/v9"

	"natal_backend/internal/app/di"
	"natal_backend/internal/app/router"
	chartadapters "natal_backend/internal/feature/chart/adapters"
	charthandler "natal_backend/internal/feature/chart/transport/handler"
	chartusecase "natal_backend/internal/feature/chart/usecase"
	orderadapters "natal_backend/internal/feature/orders/adapters"
	orderhandler "natal_backend/internal/feature/orders/transport/handler"
	orderusecase "natal_backend/internal/feature/orders/usecase"
	readingadapters "natal_backend/internal/feature/reading/adapters"
	"natal_backend/internal/feature/reading/adapters/library"
	readinghandler "natal_backend/internal/feature/reading/transport/handler"
	readingusecase "natal_backend/internal/feature/reading/usecase"
	infradb "natal_backend/internal/platform/db"
	infraredis "natal_backend/internal/platform/redis"
	"natal_backend/internal/platform/token"
)

func main() {
	// 構造化ログ（JSON）をデフォルトロガーに設定
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 計算エンジン（Redisがあればチャートキャッシュでラップ）
	calculator, err := di.NewCalculator(rdb)
	if err != nil {
		log.Fatal(err)
	}

	// ナレーター（GEMINI_NARRATOR=true のときのみ有効）
	narrator, err := di.NewNarrator(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	chartRepo := chartadapters.NewChartRepository(db)
	orderRepo := orderadapters.NewOrderRepository(db)

	// Usecase
	chartUC := chartusecase.NewChartUsecase(calculator, chartRepo, orderRepo, di.NewPlaceResolver())
	ordersUC := orderusecase.NewOrdersUsecase(orderRepo, di.NewOrderIssuer())
	readingUC := readingusecase.NewReadingUsecase(
		readingadapters.NewChartSource(chartUC), library.NewLibrary(), narrator)

	// Handler
	chartH := charthandler.NewChartHandler(chartUC)
	orderH := orderhandler.NewOrderHandler(ordersUC)
	readingH := readinghandler.NewReadingHandler(readingUC)

	// ルータ生成
	router := router.NewRouter(orderH, chartH, readingH)

	// ORDER_TOKEN_SECRETチェック（開発中の注意喚起）
	if os.Getenv(token.EnvKeyOrderTokenSecret) == "" {
		log.Println("[WARN] ORDER_TOKEN_SECRET is not set. Set a strong secret in production.")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
