package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "p2p-lending-ledger/internal/adapter/http"
	mw "p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/adapter/publisher"
	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/config"
	"p2p-lending-ledger/internal/infrastructure/cache"
	"p2p-lending-ledger/internal/infrastructure/db"
	"p2p-lending-ledger/internal/infrastructure/logging"
	"p2p-lending-ledger/internal/infrastructure/metrics"
	ucCollateral "p2p-lending-ledger/internal/usecase/collateral"
	ucGuarantor "p2p-lending-ledger/internal/usecase/guarantor"
	ucLoan "p2p-lending-ledger/internal/usecase/loan"
	ucOffer "p2p-lending-ledger/internal/usecase/offer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	closer, err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()
	if err := cfg.Validate(); err != nil {
		return err
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	m := metrics.Default()
	u := mysql.NewGormUoW(gdb)
	assets := mysql.NewAssetLedger(gdb)
	router := httpadp.Router{
		Health:     httpadp.NewHandler(),
		Offers:     httpadp.NewOfferHandler(ucOffer.NewUsecase(u, mysql.NewOfferRepository(gdb))),
		Guarantors: httpadp.NewGuarantorHandler(ucGuarantor.NewUsecase(u, mysql.NewGuarantorRepository(gdb))),
		Collateral: httpadp.NewCollateralHandler(ucCollateral.NewUsecase(u, mysql.NewCollateralRepository(gdb), assets)),
		Loans:      httpadp.NewLoanHandler(ucLoan.NewUsecase(u, mysql.NewLoanRepository(gdb))),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Logger(),
		middleware.Recover(),
		mw.Metrics(m),
	)

	// routes
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	router.Register(e,
		mw.Auth(mw.AuthConfig{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer}),
		mw.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if len(cfg.KafkaBrokers) > 0 {
		writer := publisher.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer writer.Close()
		relay := publisher.NewRelay(mysql.NewOutboxRepository(gdb), writer, m, cfg.OutboxBatch, cfg.OutboxPoll)
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	} else {
		slog.Warn("KAFKA_BROKERS not set; events stay in the outbox")
	}

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err = <-errCh:
		stop()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := e.Shutdown(shutdownCtx); serr != nil {
		slog.Error("http shutdown", "error", serr)
	}
	wg.Wait()
	if sqlDB, derr := gdb.DB(); derr == nil {
		_ = sqlDB.Close()
	}
	return err
}
