package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// ListWatched возвращает все просмотренные тайтлы
func (r *PostgresRepository) ListWatched(ctx context.Context) ([]GormWatched, error) {
	if err := r.checkContext(ctx, "ListWatched"); err != nil {
		return nil, err
	}

	var watched []GormWatched
	if err := r.db.WithContext(ctx).Find(&watched).Error; err != nil {
		r.logger.ErrorContext(ctx, "failed to list watched entries", slog.Any("error", err))
		return nil, err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("watched entries fetched successfully: %d rows", len(watched)))
	return watched, nil
}

// AddWatched отмечает тайтл просмотренным; дубликаты допускаются
func (r *PostgresRepository) AddWatched(ctx context.Context, watched *GormWatched) error {
	if err := r.checkContext(ctx, "AddWatched"); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(watched).Error; err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to mark %q as watched", watched.Title), slog.Any("error", err))
		return err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("marked as watched successfully with ID: %d", watched.WatchedID))
	return nil
}

// DeleteWatched удаляет запись по ID; отсутствие записи ошибкой не считается
func (r *PostgresRepository) DeleteWatched(ctx context.Context, watchedID uint) error {
	if err := r.checkContext(ctx, "DeleteWatched"); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("watchedid = ?", watchedID).Delete(&GormWatched{}).Error; err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to remove watched entry with ID: %d", watchedID), slog.Any("error", err))
		return err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("watched entry removed with ID: %d", watchedID))
	return nil
}
