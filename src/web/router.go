package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(h.metrics))
	r.Use(recoverMiddleware)

	r.Get("/", h.dashboard)
	r.Get("/favicon.ico", faviconHandler)
	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	r.Get("/charts/{chart}.{format}", h.getChartImage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", h.getOptions)
		r.Get("/charts/{chart}", h.getFigure)
		r.Get("/records", h.getRecords)
	})
	return r
}
