package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/restoboard/restoboard/internal/config"
	"github.com/restoboard/restoboard/internal/export"
	"github.com/restoboard/restoboard/internal/httpx"
	"github.com/restoboard/restoboard/internal/models"
	"github.com/restoboard/restoboard/internal/service"
	"github.com/restoboard/restoboard/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres unavailable", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemoryStore()
	}

	if err := seedTargets(ctx, st, cfg.TargetsFile); err != nil {
		logger.Error("targets seed failed", slog.String("file", cfg.TargetsFile), slog.String("err", err.Error()))
		os.Exit(1)
	}

	var cache *service.ReportCache
	if cfg.RedisAddr != "" {
		cache = service.NewReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
		defer cache.Close()
	}

	svc := service.NewDashboard(st, cache, logger)
	digest := export.NewDigest(export.NewHTTPClient(cfg.HTTPTimeout), svc, cfg, logger)

	r := httpx.NewRouter(logger, svc, digest)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// seedTargets loads per-store targets from a JSON file into the store. Missing
// file is fine when targets are already persisted.
func seedTargets(ctx context.Context, st store.Store, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var targets []models.StoreTargets
	if err := json.Unmarshal(b, &targets); err != nil {
		return err
	}
	for _, t := range targets {
		if err := st.SaveTargets(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
