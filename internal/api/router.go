package api

import (
	"net/http"

	"mood-dining-service/internal/api/handlers"
	"mood-dining-service/internal/ports"
	"mood-dining-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(search *services.SearchService, mood ports.MoodConverter) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Search: search,
		Mood:   mood,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/search", searchHandler.Post)

	return requestIDMiddleware(loggingMiddleware(mux))
}
