package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-api/internal/config"
	"clinic-api/internal/handler"
	"clinic-api/internal/health"
	"clinic-api/internal/logging"
	"clinic-api/internal/middleware"
	"clinic-api/internal/store"
	"clinic-api/internal/web"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	logger, logFile, err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Printf("logging: %v", err)
		return 1
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := store.Open(connectCtx, cfg.Store)
	cancel()
	if err != nil {
		logger.Error("store open", "driver", cfg.Store.Driver, "err", err)
		return 1
	}
	st := store.New(db)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("store close", "err", err)
		}
	}()
	if err := st.Init(ctx); err != nil {
		logger.Error("store init", "err", err)
		return 1
	}
	logger.Info("store ready", "driver", cfg.Store.Driver)

	h := handler.New(st, logger)

	// grpc health
	hs := health.New(st, cfg.HealthInterval, logger)
	go hs.Run(ctx)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Error("grpc listen", "err", err)
		return 1
	}
	go func() {
		logger.Info("grpc health listening", "port", cfg.GRPCPort)
		if err := hs.Serve(lis); err != nil {
			logger.Error("grpc", "err", err)
		}
	}()

	// http
	gin.SetMode(gin.ReleaseMode)
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Stop()

	httpSrv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: web.NewRouter(h, web.Options{
			Origins: cfg.CORSOrigins,
			Limiter: rl,
			Health:  hs,
			Log:     logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http listening", "port", cfg.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http", "err", err)
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "err", err)
	}
	hs.Stop()
	return 0
}
