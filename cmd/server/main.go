package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-seat-inventory/internal/api"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/api/handler"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/api/middleware"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/application"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/broadcast"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/config"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/pkg/metrics"
	"github.com/sanosuguru/go-cinema-seat-inventory/internal/worker"
)

func main() {
	// .env があれば読み込む（なければ環境変数のみ）
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Server.Env))
	defer logger.Sync()

	m := metrics.Init()

	// ストア（起動時に構築し、各コンポーネントへハンドルで渡す）
	seatStore := memory.NewSeatStore()
	showRepo := memory.NewShowRepository()
	foodCatalog := memory.NewFoodCatalog()
	customerDir := memory.NewCustomerDirectory()

	if err := memory.SeedDemoData(seatStore, showRepo, foodCatalog, customerDir); err != nil {
		logger.Fatal("シードデータの投入に失敗", zap.Error(err))
	}

	// ブロードキャスター
	hub := broadcast.NewHub(m)

	// サービス
	statsService := application.NewStatsService(seatStore, hub, hub)
	bookingService := application.NewBookingService(seatStore, showRepo, customerDir, statsService, hub, m)
	authService := application.NewAuthService(customerDir, hub, cfg.Auth.AdminToken)
	catalogService := application.NewCatalogService(showRepo, seatStore, foodCatalog, hub)

	// ハンドラー
	gatewayHandler := handler.NewGatewayHandler(hub, authService, bookingService, catalogService, statsService, m, handler.GatewayConfig{
		SendBuffer:     cfg.Gateway.SendBuffer,
		PingInterval:   cfg.Gateway.PingInterval,
		PongWait:       cfg.Gateway.PongWait,
		WriteWait:      cfg.Gateway.WriteWait,
		MaxMessageSize: cfg.Gateway.MaxMessageSize,
	})
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	e.GET("/ws", gatewayHandler.Serve)
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	// 統計の定期配信ワーカー
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	statsBroadcaster := worker.NewStatsBroadcaster(statsService, cfg.Stats.BroadcastInterval)
	go statsBroadcaster.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
