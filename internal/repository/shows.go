package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// ListShows возвращает все сериалы каталога
func (r *PostgresRepository) ListShows(ctx context.Context) ([]GormShow, error) {
	if err := r.checkContext(ctx, "ListShows"); err != nil {
		return nil, err
	}

	var shows []GormShow
	if err := r.db.WithContext(ctx).Find(&shows).Error; err != nil {
		r.logger.ErrorContext(ctx, "failed to list shows", slog.Any("error", err))
		return nil, err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("shows fetched successfully: %d rows", len(shows)))
	return shows, nil
}

// CreateShow добавляет сериал; повторное название дает ErrDuplicateEntry
func (r *PostgresRepository) CreateShow(ctx context.Context, show *GormShow) error {
	if err := r.checkContext(ctx, "CreateShow"); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(show).Error; err != nil {
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, fmt.Sprintf("show with title %q already exists", show.Title))
			return fmt.Errorf("%w: %w", ErrDuplicateEntry, err)
		}
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to create show with title %q", show.Title), slog.Any("error", err))
		return err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("show created successfully with ID: %d", show.ShowID))
	return nil
}

// ShowsByGenre возвращает сериалы с точным совпадением жанра; пустой результат не является ошибкой
func (r *PostgresRepository) ShowsByGenre(ctx context.Context, genre string) ([]GormShow, error) {
	if err := r.checkContext(ctx, "ShowsByGenre"); err != nil {
		return nil, err
	}

	shows := make([]GormShow, 0)
	if err := r.db.WithContext(ctx).Where("genre = ?", genre).Find(&shows).Error; err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to get shows for genre %q", genre), slog.Any("error", err))
		return nil, err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("shows fetched successfully for genre %q: %d rows", genre, len(shows)))
	return shows, nil
}

// ShowByTitle ищет сериал по точному названию
func (r *PostgresRepository) ShowByTitle(ctx context.Context, title string) (*GormShow, error) {
	if err := r.checkContext(ctx, "ShowByTitle"); err != nil {
		return nil, err
	}

	var shows []GormShow
	if err := r.db.WithContext(ctx).Where("title = ?", title).Find(&shows).Error; err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to get show with title %q", title), slog.Any("error", err))
		return nil, err
	}

	if len(shows) == 0 {
		r.logger.WarnContext(ctx, fmt.Sprintf("show not found with title %q", title))
		return nil, ErrRecordNotFound
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("show fetched successfully with ID: %d", shows[0].ShowID))
	return &shows[0], nil
}
