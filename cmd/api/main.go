package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipquickr/internal/core/cache"
	"shipquickr/internal/core/config"
	"shipquickr/internal/core/database"
	"shipquickr/internal/core/events"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/core/server"
	courieradapters "shipquickr/internal/features/couriers/adapters"
	markupadapters "shipquickr/internal/features/markup/adapters"
	markuphandler "shipquickr/internal/features/markup/handler"
	markupservice "shipquickr/internal/features/markup/service"
	orderadapter "shipquickr/internal/features/orders/adapters"
	orderhandler "shipquickr/internal/features/orders/handler"
	orderservice "shipquickr/internal/features/orders/service"
	rateshandler "shipquickr/internal/features/rates/handler"
	ratesports "shipquickr/internal/features/rates/ports"
	ratesservice "shipquickr/internal/features/rates/service"
	shipmenthandler "shipquickr/internal/features/shipments/handler"
	shipmentports "shipquickr/internal/features/shipments/ports"
	shipmentservice "shipquickr/internal/features/shipments/service"
	walletadapters "shipquickr/internal/features/wallet/adapters"
	wallethandler "shipquickr/internal/features/wallet/handler"

	"go.uber.org/zap"
)

// @title ShipQuickr API
// @version 1.0
// @description Multi-courier rate shopping, markup pricing and shipment booking.
// @contact.name API Support
// @contact.email support@shipquickr.in
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Database and schema
	db, err := database.Open(startupCtx, cfg.Database)
	if err != nil {
		l.Fatal("Database Health Check Failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(startupCtx, db); err != nil {
		l.Fatal("Database migration failed", zap.Error(err))
	}
	l.Info("Database connection verified")

	// Cache
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Invalid Redis configuration", zap.Error(err))
	}
	defer redisCache.Close()

	if err := redisCache.Ping(startupCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Events
	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.ShipmentTopic)
	defer publisher.Close()

	// Couriers
	cards, err := config.LoadRateCards(cfg.Pricing.RateCardFile)
	if err != nil {
		l.Fatal("Failed to load rate cards", zap.Error(err))
	}
	couriers := courieradapters.Build(cfg, cards)
	if len(couriers) == 0 {
		l.Warn("No couriers configured, every rate request will return 404")
	}

	quoteAdapters := make([]ratesports.CourierAdapter, 0, len(couriers))
	bookers := make([]shipmentports.CourierBooker, 0, len(couriers))
	for _, c := range couriers {
		quoteAdapters = append(quoteAdapters, c)
		bookers = append(bookers, c)
	}

	txManager := database.NewTxManager(db)

	// Markup
	markupRepo := markupadapters.NewCachedMarkupRepository(
		markupadapters.NewPostgresMarkupRepository(db),
		redisCache,
		markupadapters.DefaultRuleCacheTTL,
	)
	markupSvc := markupservice.NewMarkupService(markupRepo)
	markupHdl := markuphandler.NewMarkupHandler(markupSvc)

	// Rates
	rateSvc := ratesservice.NewRateService(
		ratesservice.NewOrchestrator(quoteAdapters),
		markupSvc,
		redisCache,
		cfg.Pricing.QuoteCacheTTL,
	)
	rateHdl := rateshandler.NewRateHandler(rateSvc, cfg.Pricing.DeclaredValueFloor)

	// Orders and wallet
	orderStore := orderadapter.NewPostgresOrderStore(db)
	orderHdl := orderhandler.NewOrderHandler(orderservice.NewOrderService(orderStore))

	wallet := walletadapters.NewPostgresWallet(db, txManager)
	walletHdl := wallethandler.NewWalletHandler(wallet)

	// Shipments
	dispatcher := shipmentservice.NewDispatcher(shipmentservice.Dependencies{
		Orders:    orderStore,
		Wallet:    wallet,
		Quotes:    rateSvc,
		Tx:        txManager,
		Locks:     redisCache,
		Publisher: publisher,
		Bookers:   bookers,
	}, cfg.Pricing.DeclaredValueFloor, cfg.Pricing.BookingLockTTL)
	shipmentHdl := shipmenthandler.NewShipmentHandler(dispatcher)

	srv := server.New(cfg)
	srv.AddCheck("database", db.PingContext)
	srv.AddCheck("redis", redisCache.Ping)

	// Register Routes
	srv.App.Post("/rates", rateHdl.GetRates)
	srv.App.Post("/shipment/confirm", shipmentHdl.ConfirmShipment)
	srv.App.Post("/shipment/cancel", shipmentHdl.CancelShipment)
	srv.App.Get("/orders/:id", orderHdl.GetOrder)
	srv.App.Get("/wallet/:userId", walletHdl.GetBalance)
	srv.App.Get("/admin/markup", markupHdl.GetRule)
	srv.App.Post("/admin/markup", markupHdl.SetRule)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Info("Shutting down")
		if err := srv.Shutdown(10 * time.Second); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
