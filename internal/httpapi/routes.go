package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DoyleJ11/guesswho-backend/internal/ws"
)

func SetupRoutes(d Deps) http.Handler {
	d = d.withDefaults()
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.Logger))

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, ws.Options{
		ReadTimeout:  d.WSReadTimeout,
		WriteTimeout: d.WSWriteTimeout,
		Logger:       d.Logger,
	}))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", CreateSession(d))
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", GetSession(d))
			r.Delete("/", DeleteSession(d))
			r.Post("/seed", NewSeed(d))
			r.Post("/random", RandomSeed(d))
			r.Post("/click", Click(d))
			r.Post("/undo", Undo(d))
		})
	})
	return r
}
