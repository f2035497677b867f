package handlers

import (
	"errors"
	"net/http"

	"github.com/watchlist-kata/showtracker/internal/service"
)

// MarkWatched POST /watched
func (h *Handler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadBody(w, r, err)
		return
	}

	if _, err := h.watched.MarkWatched(r.Context(), req.Title); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "Title is required")
			return
		}
		h.writeInternal(w, r, "Error marking as watched", err)
		return
	}
	writeMessage(w, http.StatusCreated, "Marked as watched successfully")
}

// ListWatched GET /watched
func (h *Handler) ListWatched(w http.ResponseWriter, r *http.Request) {
	watched, err := h.watched.ListWatched(r.Context())
	if err != nil {
		h.writeInternal(w, r, "Error fetching watched", err)
		return
	}
	writeJSON(w, http.StatusOK, toWatchedResponses(watched))
}

// RemoveWatched DELETE /watched/{watchedId}; отсутствие записи не проверяется
func (h *Handler) RemoveWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "watchedId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "WatchedId must be a positive integer")
		return
	}

	if err := h.watched.RemoveWatched(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "WatchedId is required")
			return
		}
		h.writeInternal(w, r, "Error removing from watched", err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from watched successfully")
}
