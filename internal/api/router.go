package api

import (
	"net/http"

	"hos-trip-service/internal/api/handlers"
	"hos-trip-service/internal/ports"
	"hos-trip-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.TripRepository,
	provider ports.RouteProvider,
	fallback ports.RouteProvider,
	rules services.HOSRules,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Repo:     repo,
		Provider: provider,
		Fallback: fallback,
		Rules:    rules,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /trips", tripHandler.Calculate)
	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("GET /trips/{id}", tripHandler.Get)
	mux.HandleFunc("GET /trips/{id}/logs", tripHandler.Logs)

	return loggingMiddleware(mux)
}
