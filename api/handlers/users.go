package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/watchlist-kata/showtracker/internal/service"
)

// ListUsers GET /users. Ответ содержит пароли в открытом виде.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeInternal(w, r, "Error fetching users", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Signup POST /signup; занятый email отдается как 500
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadBody(w, r, err)
		return
	}

	err := h.users.Signup(r.Context(), service.Signup{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "Name, email, and password required")
			return
		}
		h.logger.ErrorContext(r.Context(), "Signup: failed to insert user", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Inserting data error", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "Success"})
}

// Login POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadBody(w, r, err)
		return
	}

	err := h.users.Login(r.Context(), service.Credentials{Email: req.Email, Password: req.Password})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: "Success"})
	case errors.Is(err, service.ErrInvalidArgument):
		writeMessage(w, http.StatusBadRequest, "Email and password required")
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No email existed"})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Password not matched"})
	default:
		h.logger.ErrorContext(r.Context(), "Login: failed to look up user", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Login error in server"})
	}
}
