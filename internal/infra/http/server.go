package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/domain"
	"pet-adoption-hub/internal/usecase/panels"
)

// Refresher обновляет кэш оценок с сервера подбора.
type Refresher interface {
	Refresh(ctx context.Context, token string) ([]domain.Recommendation, error)
}

// Deps: зависимости обработчиков сервиса-компаньона.
type Deps struct {
	Scores    domain.ScoreCache
	Donations domain.DonationLedger
	Panels    *panels.Set
	Matching  Refresher
}

// Server оборачивает chi.Router с базовыми middlewares.
type Server struct {
	Router chi.Router
	log    zerolog.Logger
	srv    *http.Server
}

// NewServer создаёт HTTP сервер и регистрирует маршруты.
func NewServer(logger zerolog.Logger, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(BearerTokenMiddleware)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := &handlers{deps: deps, log: logger}
	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/scores", h.getSnapshot)
		api.Put("/scores", h.putScores)
		api.Get("/scores/{petId}", h.getScore)

		api.Get("/donations", h.listDonations)
		api.Get("/donations/{campaignId}", h.hasDonation)
		api.Post("/donations/{campaignId}", h.markDonation)

		api.Get("/panels", h.listPanels)
		api.Post("/panels/{name}/{action}", h.panelAction)

		api.Post("/matching/refresh", h.refresh)
	})
	return &Server{Router: r, log: logger}
}

// Start запускает http.Server.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("HTTP сервер запущен")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown позволяет корректно завершить работу.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("request_id", RequestID(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
