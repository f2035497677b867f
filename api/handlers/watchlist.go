package handlers

import (
	"errors"
	"net/http"

	"github.com/watchlist-kata/showtracker/internal/service"
)

// GetWatchlist GET /watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.GetWatchlist(r.Context())
	if err != nil {
		h.writeInternal(w, r, "Error fetching watchlist", err)
		return
	}
	writeJSON(w, http.StatusOK, toWatchlistResponses(entries))
}

// AddToWatchlist POST /watchlist
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadBody(w, r, err)
		return
	}

	_, err := h.watchlist.AddToWatchlist(r.Context(), req.Title)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "Added to watchlist successfully")
	case errors.Is(err, service.ErrInvalidArgument):
		writeMessage(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "TV show not found")
	default:
		h.writeInternal(w, r, "Error adding to watchlist", err)
	}
}

// RemoveFromWatchlist DELETE /watchlist/{showId} удаляет все записи сериала
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "showId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "ShowId must be a positive integer")
		return
	}

	if err := h.watchlist.RemoveFromWatchlist(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "ShowId is required")
			return
		}
		h.writeInternal(w, r, "Error removing from watchlist", err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from watchlist successfully")
}
