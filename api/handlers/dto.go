package handlers

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/watchlist-kata/showtracker/internal/repository"
)

// Имена полей ответов совпадают с именами колонок, как их возвращает PostgreSQL

type showResponse struct {
	ShowID  uint    `json:"showid"`
	Title   string  `json:"title"`
	Poster  *string `json:"poster"`
	Genre   *string `json:"genre"`
	Seasons *int    `json:"seasons"`
	Summary *string `json:"summary"`
}

type watchedResponse struct {
	WatchedID uint   `json:"watchedid"`
	Title     string `json:"title"`
}

type watchlistResponse struct {
	WatchlistID uint      `json:"watchlistid"`
	UserID      uint      `json:"userid"`
	ShowID      uint      `json:"showid"`
	AddedOn     time.Time `json:"addedon"`
	Title       string    `json:"title"`
}

type userResponse struct {
	UserID   uint    `json:"userid"`
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

type addShowRequest struct {
	Title   string `json:"Title"`
	Poster  string `json:"Poster"`
	Genre   string `json:"Genre"`
	Seasons seasonsValue `json:"Seasons"`
	Summary string       `json:"Summary"`
}

// seasonsValue хранит Seasons в текстовом виде: формы присылают и 3, и "3".
// Приведение к числу выполняет сервис
type seasonsValue string

func (v *seasonsValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = seasonsValue(s)
	default:
		// 3.0 и 3e0 - то же целое, что и 3
		if f, err := strconv.ParseFloat(string(data), 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			*v = seasonsValue(strconv.FormatInt(int64(f), 10))
			return nil
		}
		*v = seasonsValue(data)
	}
	return nil
}

type titleRequest struct {
	Title string `json:"title"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func toShowResponse(s repository.GormShow) showResponse {
	return showResponse{
		ShowID:  s.ShowID,
		Title:   s.Title,
		Poster:  s.Poster,
		Genre:   s.Genre,
		Seasons: s.Seasons,
		Summary: s.Summary,
	}
}

func toShowResponses(shows []repository.GormShow) []showResponse {
	out := make([]showResponse, 0, len(shows))
	for _, s := range shows {
		out = append(out, toShowResponse(s))
	}
	return out
}

func toWatchedResponses(watched []repository.GormWatched) []watchedResponse {
	out := make([]watchedResponse, 0, len(watched))
	for _, w := range watched {
		out = append(out, watchedResponse{WatchedID: w.WatchedID, Title: w.Title})
	}
	return out
}

func toWatchlistResponses(entries []repository.GormWatchlist) []watchlistResponse {
	out := make([]watchlistResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, watchlistResponse{
			WatchlistID: e.WatchlistID,
			UserID:      e.UserID,
			ShowID:      e.ShowID,
			AddedOn:     e.AddedOn,
			Title:       e.Title,
		})
	}
	return out
}

func toUserResponses(users []repository.GormUser) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			UserID:   u.UserID,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		})
	}
	return out
}
