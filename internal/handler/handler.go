package handler

import (
	"log/slog"

	"clinic-api/internal/store"
)

// Handler implements the clinic operations. Methods take the raw request
// body where the resource schema applies and return either a result or an
// *Error.
type Handler struct {
	store *store.Store
	log   *slog.Logger
}

func New(st *store.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: st, log: log}
}

// Ack is the body of every successful write.
type Ack struct {
	Message string `json:"message"`
}
