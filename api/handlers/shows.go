package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/watchlist-kata/showtracker/internal/service"
)

// ListShows GET /shows
func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.ListShows(r.Context())
	if err != nil {
		h.writeInternal(w, r, "Error fetching shows", err)
		return
	}
	writeJSON(w, http.StatusOK, toShowResponses(shows))
}

// AddShow POST /addShows
func (h *Handler) AddShow(w http.ResponseWriter, r *http.Request) {
	var req addShowRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadBody(w, r, err)
		return
	}

	_, err := h.shows.AddShow(r.Context(), service.NewShow{
		Title:   req.Title,
		Poster:  req.Poster,
		Genre:   req.Genre,
		Seasons: string(req.Seasons),
		Summary: req.Summary,
	})
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "Show added successfully")
	case errors.Is(err, service.ErrInvalidArgument):
		writeMessage(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, "A show with this title already exists")
	default:
		h.writeInternal(w, r, "Error adding show", err)
	}
}

// ShowsByGenre GET /shows/genre/{genre}; пустой результат - пустой массив
func (h *Handler) ShowsByGenre(w http.ResponseWriter, r *http.Request) {
	genre := pathParam(r, "genre")
	shows, err := h.shows.ShowsByGenre(r.Context(), genre)
	if err != nil {
		h.writeInternal(w, r, "Error fetching shows by genre", err)
		return
	}
	writeJSON(w, http.StatusOK, toShowResponses(shows))
}

// ShowByTitle GET /show/{title}
func (h *Handler) ShowByTitle(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")
	show, err := h.shows.ShowByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.logger.WarnContext(r.Context(), fmt.Sprintf("TV show not found with title %q", title))
			writeMessage(w, http.StatusNotFound, "TV show not found")
			return
		}
		h.writeInternal(w, r, "Error fetching show", err)
		return
	}
	writeJSON(w, http.StatusOK, toShowResponse(*show))
}
