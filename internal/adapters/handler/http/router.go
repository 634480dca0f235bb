package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(interactionHandler *InteractionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	// Keep-alive endpoint for the hosting platform's health checks.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Assembly ballot service is running!"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/interactions", interactionHandler.Handle)
	})

	return r
}
