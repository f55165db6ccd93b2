package api

import (
	"net/http"

	"hos-planner-service/internal/api/handlers"
	"hos-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.RouteProvider, store ports.TripStore) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Provider: provider}
	tripHandler := &handlers.TripHandler{Provider: provider, Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/logs", planHandler.ExpandLogs)
	mux.HandleFunc("/trips", tripHandler.Collection)
	mux.HandleFunc("/trips/{id}", tripHandler.Get)
	mux.HandleFunc("/trips/{id}/logsheet", tripHandler.Logsheet)

	return loggingMiddleware(mux)
}
