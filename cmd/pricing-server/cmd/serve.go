package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"product-pricing-service/internal/api/handlers"
	"product-pricing-service/internal/api/middleware"
	"product-pricing-service/internal/cache"
	"product-pricing-service/internal/config"
	"product-pricing-service/internal/engine"
	"product-pricing-service/internal/marketdata"
	"product-pricing-service/internal/store"
	"product-pricing-service/internal/trends"
	"product-pricing-service/pkg/logger"
	domain "product-pricing-service/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Store: Postgres when configured, in-memory otherwise.
	var st store.Store
	if cfg.Database.Enabled {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		st = pg
		log.Info("store connected", "backend", "postgres", "host", cfg.Database.Host)
	} else {
		st = store.NewMemoryStore()
		log.Warn("database disabled, products will not be persisted")
	}
	defer st.Close()

	// Snapshot cache: Redis when configured, Noop otherwise.
	var snapCache cache.SnapshotCache = cache.Noop{}
	if cfg.Redis.Enabled {
		snapCache = cache.NewRedisCache(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			cache.WithTTL(cfg.Redis.TTL),
		)
		log.Info("snapshot cache connected", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}
	defer snapCache.Close() //nolint:errcheck

	// Marketplace sources with per-source rate limiting.
	sources := make([]marketdata.Source, 0, len(cfg.Sources))
	limiters := make([]*marketdata.QuotaLimiter, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		q := marketdata.NewQuotaLimiter(
			sc.RateLimit.PerSecond, sc.RateLimit.Burst, sc.RateLimit.DailyMax,
		)
		limiters = append(limiters, q)
		sources = append(sources, marketdata.NewScrapeClient(
			domain.Platform(sc.Platform), sc.BaseURL,
			marketdata.WithAPIKey(sc.APIKey),
			marketdata.WithQuotaLimiter(q),
		))
		log.Info("source configured", "platform", sc.Platform)
	}

	// Trend provider, degrading to the stable default when disabled.
	var trendProvider trends.Provider
	if cfg.Trends.Enabled {
		trendProvider = trends.NewHTTPProvider(
			cfg.Trends.BaseURL,
			trends.WithAPIKey(cfg.Trends.APIKey),
		)
	}

	eng := engine.NewEngine(
		sources, trendProvider,
		engine.WithLogger(log),
		engine.WithCache(snapCache),
		engine.WithFetchTimeout(cfg.Pricing.FetchTimeout),
		engine.WithTrendTimeout(cfg.Pricing.TrendTimeout),
		engine.WithMaxComparables(cfg.Pricing.MaxComparables),
	)

	sched, err := engine.NewScheduler(st, limiters, cfg.Schedule.GaugeInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.Recovery(log),
		middleware.RequestLog(log),
		middleware.Metrics(),
	)

	health := handlers.NewHealthHandler(st, snapCache)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Product Pricing Service", Version))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(st))
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(eng, st))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
