package api

import (
	"parking-status-backend/internal/occupancy"
	"parking-status-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	reporter *occupancy.Reporter
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, reporter *occupancy.Reporter) *Handler {
	return &Handler{
		store:    s,
		reporter: reporter,
	}
}
