package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/watchlist-kata/showtracker/internal/repository"
	"github.com/watchlist-kata/showtracker/internal/service"
)

// ShowService описывает операции каталога сериалов
type ShowService interface {
	ListShows(ctx context.Context) ([]repository.GormShow, error)
	AddShow(ctx context.Context, in service.NewShow) (*repository.GormShow, error)
	ShowsByGenre(ctx context.Context, genre string) ([]repository.GormShow, error)
	ShowByTitle(ctx context.Context, title string) (*repository.GormShow, error)
}

// WatchedService описывает операции со списком просмотренного
type WatchedService interface {
	ListWatched(ctx context.Context) ([]repository.GormWatched, error)
	MarkWatched(ctx context.Context, title string) (*repository.GormWatched, error)
	RemoveWatched(ctx context.Context, watchedID uint) error
}

// WatchlistService описывает операции со списком просмотра
type WatchlistService interface {
	GetWatchlist(ctx context.Context) ([]repository.GormWatchlist, error)
	AddToWatchlist(ctx context.Context, title string) (*repository.GormWatchlist, error)
	RemoveFromWatchlist(ctx context.Context, showID uint) error
}

// UserService описывает регистрацию и вход
type UserService interface {
	ListUsers(ctx context.Context) ([]repository.GormUser, error)
	Signup(ctx context.Context, in service.Signup) error
	Login(ctx context.Context, in service.Credentials) error
}

// Handler обслуживает HTTP маршруты API
type Handler struct {
	shows     ShowService
	watched   WatchedService
	watchlist WatchlistService
	users     UserService
	logger    *slog.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(shows ShowService, watched WatchedService, watchlist WatchlistService, users UserService, logger *slog.Logger) *Handler {
	return &Handler{
		shows:     shows,
		watched:   watched,
		watchlist: watchlist,
		users:     users,
		logger:    logger,
	}
}

// Register подключает маршруты к роутеру
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.Root)

	r.Get("/shows", h.ListShows)
	r.Post("/addShows", h.AddShow)
	r.Get("/shows/genre/{genre}", h.ShowsByGenre)
	r.Get("/show/{title}", h.ShowByTitle)

	r.Post("/watched", h.MarkWatched)
	r.Get("/watched", h.ListWatched)
	r.Delete("/watched/{watchedId}", h.RemoveWatched)

	r.Get("/watchlist", h.GetWatchlist)
	r.Post("/watchlist", h.AddToWatchlist)
	r.Delete("/watchlist/{showId}", h.RemoveFromWatchlist)

	r.Get("/users", h.ListUsers)
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

// Root отвечает фиксированной строкой, по ней клиенты проверяют доступность API
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "from db")
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type statusResponse struct {
	Status string `json:"Status"`
}

type errorResponse struct {
	Error   string `json:"Error"`
	Details string `json:"details,omitempty"`
}

// writeJSON пишет ответ с заголовком Content-Type
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // ошибки записи ответа не восстановимы
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeInternal логирует ошибку и отдает её текст клиенту вместе с сообщением маршрута
func (h *Handler) writeInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.ErrorContext(r.Context(), fmt.Sprintf("%s %s: %s", r.Method, r.URL.Path, message), slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: message, Error: err.Error()})
}

var errInvalidBody = errors.New("invalid JSON body")

func (h *Handler) writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), fmt.Sprintf("%s %s: malformed body", r.Method, r.URL.Path), slog.Any("error", err))
	writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
}

// decodeBody разбирает JSON тело запроса; пустое тело считается пустым объектом
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return nil
}

// idParam возвращает положительный целочисленный параметр пути; 0 означает отсутствие
func idParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pathParam возвращает декодированный параметр пути. chi сопоставляет маршрут
// по RawPath, только если он задан; иначе параметр уже декодирован
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
