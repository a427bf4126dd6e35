package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"pet-adoption-hub/internal/adapters/petapi"
	"pet-adoption-hub/internal/infra/config"
	httpinfra "pet-adoption-hub/internal/infra/http"
	applog "pet-adoption-hub/internal/infra/log"
	"pet-adoption-hub/internal/infra/metrics"
	"pet-adoption-hub/internal/infra/store"
	"pet-adoption-hub/internal/usecase/donations"
	"pet-adoption-hub/internal/usecase/matchcache"
	"pet-adoption-hub/internal/usecase/matching"
	"pet-adoption-hub/internal/usecase/panels"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)
	log.Logger = logger

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("companion: не удалось открыть хранилище")
	}
	defer closeStore()

	api, err := petapi.New(cfg.API.BaseURL,
		petapi.WithTimeout(cfg.API.Timeout),
		petapi.WithLogger(applog.Component(logger, "petapi")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("companion: некорректный API_BASE_URL")
	}

	cache := matchcache.NewService(kv, matchcache.WithLogger(applog.Component(logger, "matchcache")))
	ledger := donations.NewService(kv, applog.Component(logger, "donations"))
	matcher := matching.NewService(api, api, cache, applog.Component(logger, "matching"))

	srv := httpinfra.NewServer(applog.Component(logger, "http"), httpinfra.Deps{
		Scores:    cache,
		Donations: ledger,
		Panels:    panels.New(panels.AdoptionModal, panels.DonationModal, panels.CartDrawer, panels.FilterDrawer),
		Matching:  matcher,
	})

	if cfg.MetricsAddr != "" && cfg.MetricsAddr != cfg.HTTPAddr {
		metrics.StartServer(ctx, applog.Component(logger, "metrics"), cfg.MetricsAddr)
	}
	go func() {
		log.Info().Str("store", cfg.Store.Driver).Msg("companion: старт")
		if err := srv.Start(cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("companion: сервер остановлен")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("companion: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
