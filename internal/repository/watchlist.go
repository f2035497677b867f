package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// GetWatchlist получает весь список просмотра
func (r *PostgresRepository) GetWatchlist(ctx context.Context) ([]GormWatchlist, error) {
	if err := r.checkContext(ctx, "GetWatchlist"); err != nil {
		return nil, err
	}

	var watchlists []GormWatchlist
	if err := r.db.WithContext(ctx).Find(&watchlists).Error; err != nil {
		r.logger.ErrorContext(ctx, "failed to get watchlist", slog.Any("error", err))
		return nil, err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("watchlist fetched successfully: %d rows", len(watchlists)))
	return watchlists, nil
}

// AddToWatchlistByTitle находит сериал по entry.Title и добавляет его в список просмотра.
// Поиск и вставка выполняются в одной транзакции; если сериала нет, вставка не выполняется.
func (r *PostgresRepository) AddToWatchlistByTitle(ctx context.Context, entry *GormWatchlist) error {
	if err := r.checkContext(ctx, "AddToWatchlistByTitle"); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shows []GormShow
		if err := tx.Select("showid").Where("title = ?", entry.Title).Find(&shows).Error; err != nil {
			return err
		}
		if len(shows) == 0 {
			return ErrRecordNotFound
		}

		entry.ShowID = shows[0].ShowID
		return tx.Create(entry).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			r.logger.WarnContext(ctx, fmt.Sprintf("show not found with title %q", entry.Title))
			return err
		}
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to add %q to watchlist for user ID: %d", entry.Title, entry.UserID), slog.Any("error", err))
		return err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("show added to watchlist successfully for show ID: %d and user ID: %d", entry.ShowID, entry.UserID))
	return nil
}

// RemoveShowFromWatchlist удаляет все записи списка просмотра для сериала
func (r *PostgresRepository) RemoveShowFromWatchlist(ctx context.Context, showID uint) error {
	if err := r.checkContext(ctx, "RemoveShowFromWatchlist"); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("showid = ?", showID).Delete(&GormWatchlist{})
	if result.Error != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to remove show from watchlist for show ID: %d", showID), slog.Any("error", result.Error))
		return result.Error
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("show removed from watchlist for show ID: %d (%d rows)", showID, result.RowsAffected))
	return nil
}
