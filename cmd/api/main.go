package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "review_dash/internal/adapters/http_server"
	"review_dash/internal/adapters/observability"
	redisad "review_dash/internal/adapters/redis"
	"review_dash/internal/app"
	"review_dash/internal/bootstrap"
	"review_dash/internal/domain"
	"review_dash/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// dataset + classifier, loaded once
	rt, err := bootstrap.Load(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup load failed")
	}
	observability.SetDatasetRows(rt.Dataset.Len())

	// cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching disabled")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	dash := app.NewDashboardService(rt.Dataset, cache, cfg.CacheTTL, cfg.TopKeywords)
	pred := app.NewPredictService(rt.Resolver, observability.ObservePrediction)

	// http
	srv := server.New(log.Logger, 15*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Dash: dash, Predict: pred})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
