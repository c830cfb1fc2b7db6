package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Deinys/SmartHome-Backend/config"
	"github.com/Deinys/SmartHome-Backend/controllers"
	"github.com/Deinys/SmartHome-Backend/ratelimit"
	"github.com/Deinys/SmartHome-Backend/revocation"
	"github.com/Deinys/SmartHome-Backend/services"
	"github.com/Deinys/SmartHome-Backend/stream"
	"github.com/Deinys/SmartHome-Backend/telemetry"
	"github.com/Deinys/SmartHome-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	return cmd
}

func runServer(ctx context.Context, port int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, logger, err := openStore()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Init(ctx, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	var (
		limiter ratelimit.Limiter = ratelimit.NewInMemory(cfg.AuthRateWindow)
		revoked revocation.Store  = revocation.NewMemory()
	)
	rdb, err := config.NewRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, cfg.AuthRateWindow)
		revoked = revocation.NewRedis(rdb)
	}

	tokens := utils.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	h := controllers.NewHandler(controllers.Options{
		Service:   services.New(db, tokens),
		DB:        db,
		Tokens:    tokens,
		Revoked:   revoked,
		Hub:       stream.NewHub(),
		Limiter:   limiter,
		AuthLimit: cfg.AuthRateLimit,
		SeedCount: cfg.SeedCount,
		Origins:   cfg.CORSOrigins,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           telemetry.Handler(h.Router(), "smarthome"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "driver", cfg.DBDriver, "redis", rdb != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
