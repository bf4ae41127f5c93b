package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, ws *WSHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/seats", h.Seats)
		r.Get("/stats", h.Stats)
	})

	r.Get("/ws", ws.HandleWS)

	return r
}
