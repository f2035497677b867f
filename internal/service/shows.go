package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/watchlist-kata/showtracker/internal/repository"
)

// NewShow - входные данные для добавления сериала. Seasons приходит как текст
// и приводится к целому так же, как это сделал бы PostgreSQL для колонки INT
type NewShow struct {
	Title   string `validate:"required"`
	Poster  string
	Genre   string
	Seasons string
	Summary string
}

// ShowService управляет каталогом сериалов
type ShowService struct {
	base
	repo repository.ShowRepository
}

// NewShowService создает новый экземпляр ShowService
func NewShowService(repo repository.ShowRepository, logger *slog.Logger) *ShowService {
	return &ShowService{base: base{logger: logger}, repo: repo}
}

// ListShows возвращает все сериалы
func (s *ShowService) ListShows(ctx context.Context) ([]repository.GormShow, error) {
	if err := s.checkContextCancelled(ctx, "ListShows"); err != nil {
		return nil, err
	}
	return s.repo.ListShows(ctx)
}

// AddShow добавляет сериал; незаполненные необязательные поля сохраняются как NULL
func (s *ShowService) AddShow(ctx context.Context, in NewShow) (*repository.GormShow, error) {
	if err := s.checkContextCancelled(ctx, "AddShow"); err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, "AddShow", in); err != nil {
		return nil, err
	}

	seasons, err := parseSeasons(in.Seasons)
	if err != nil {
		s.logger.ErrorContext(ctx, fmt.Sprintf("AddShow: %v", err))
		return nil, err
	}

	show := &repository.GormShow{
		Title:   in.Title,
		Poster:  optional(in.Poster),
		Genre:   optional(in.Genre),
		Seasons: seasons,
		Summary: optional(in.Summary),
	}

	if err := s.repo.CreateShow(ctx, show); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("show %q added successfully", show.Title))
	return show, nil
}

// ShowsByGenre возвращает сериалы жанра, возможно пустой список
func (s *ShowService) ShowsByGenre(ctx context.Context, genre string) ([]repository.GormShow, error) {
	if err := s.checkContextCancelled(ctx, "ShowsByGenre"); err != nil {
		return nil, err
	}
	return s.repo.ShowsByGenre(ctx, genre)
}

// ShowByTitle возвращает сериал по названию или ErrNotFound
func (s *ShowService) ShowByTitle(ctx context.Context, title string) (*repository.GormShow, error) {
	if err := s.checkContextCancelled(ctx, "ShowByTitle"); err != nil {
		return nil, err
	}

	show, err := s.repo.ShowByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: show %q", ErrNotFound, title)
		}
		return nil, err
	}
	return show, nil
}

// parseSeasons возвращает nil для пустого значения и нуля.
// Нечисловое значение - ошибка хранилища, а не ошибка ввода
func parseSeasons(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid input syntax for type integer: %q", raw)
	}
	return optional(int(n)), nil
}
