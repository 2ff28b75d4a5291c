package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	invhandler "github.com/Guimenn/mobiliai-inventory/internal/inventory/handler"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/listener"
	invrepo "github.com/Guimenn/mobiliai-inventory/internal/inventory/repository"
	invusecase "github.com/Guimenn/mobiliai-inventory/internal/inventory/usecase"
	"github.com/Guimenn/mobiliai-inventory/internal/middleware"
	prodhandler "github.com/Guimenn/mobiliai-inventory/internal/product/handler"
	prodrepo "github.com/Guimenn/mobiliai-inventory/internal/product/repository"
	produsecase "github.com/Guimenn/mobiliai-inventory/internal/product/usecase"
	storehandler "github.com/Guimenn/mobiliai-inventory/internal/store/handler"
	storerepo "github.com/Guimenn/mobiliai-inventory/internal/store/repository"
	storeusecase "github.com/Guimenn/mobiliai-inventory/internal/store/usecase"
	"github.com/Guimenn/mobiliai-inventory/pkg/cache"
	"github.com/Guimenn/mobiliai-inventory/pkg/database"
	"github.com/Guimenn/mobiliai-inventory/pkg/jwtutil"
	"github.com/Guimenn/mobiliai-inventory/pkg/logger"
	"github.com/Guimenn/mobiliai-inventory/pkg/search"
	"github.com/Guimenn/mobiliai-inventory/prometheus"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; containers set the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadEnv()

	log, err := logger.Init(&cfg.Logger, cfg.Server.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgres(&cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		log.Warn("elasticsearch unavailable, catalog search will use postgres only", zap.Error(err))
		esClient = nil
	}

	jwtutil.Initialize(&cfg.JWT)
	prometheus.InitMetrics(&cfg.Metrics)

	storeRepo := storerepo.NewPGRepository(db)
	productRepo := prodrepo.NewPGRepository(db)
	inventoryRepo := invrepo.NewPGRepository(db)

	storeUC := storeusecase.NewStoreUseCase(storeRepo, log)
	inventoryUC := invusecase.NewInventoryUseCase(inventoryRepo, storeRepo, redisClient, log)
	productUC := produsecase.NewProductUseCase(productRepo, storeRepo, inventoryRepo, inventoryUC, redisClient, esClient, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saleListener := listener.NewSaleListener(&cfg.Kafka, inventoryUC, log)
	go saleListener.Start(ctx)
	defer saleListener.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID)
	e.Use(middleware.AccessLog)
	e.Use(middleware.Metrics)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.Auth)
	storehandler.NewStoreHandler(storeUC).Register(api)
	invhandler.NewInventoryHandler(inventoryUC).Register(api)
	prodhandler.NewProductHandler(productUC).Register(api)

	go func() {
		log.Info("starting http server", zap.String("addr", cfg.Server.HTTPPort))
		if err := e.Start(cfg.Server.HTTPPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
