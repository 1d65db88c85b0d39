package httpapi

import (
	"net/http"

	"github.com/DoyleJ11/dice-tracker/internal/hub"
	"github.com/DoyleJ11/dice-tracker/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(h *hub.Hub, wsOpts ws.Options, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	log := logger.Named("http")
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/tables", CreateTable(h, log))
	r.Get("/tables/{code}", GetTable(h))
	r.Get("/healthz", Healthz(h))
	r.Get("/ws", ws.Handler(h, wsOpts, log))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}
