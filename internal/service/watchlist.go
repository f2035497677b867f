package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/watchlist-kata/showtracker/internal/repository"
)

// WatchlistService управляет списком просмотра
type WatchlistService struct {
	base
	repo repository.WatchlistRepository
	now  func() time.Time
}

// NewWatchlistService создает новый экземпляр WatchlistService
func NewWatchlistService(repo repository.WatchlistRepository, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{base: base{logger: logger}, repo: repo, now: time.Now}
}

// GetWatchlist возвращает все записи списка просмотра
func (s *WatchlistService) GetWatchlist(ctx context.Context) ([]repository.GormWatchlist, error) {
	if err := s.checkContextCancelled(ctx, "GetWatchlist"); err != nil {
		return nil, err
	}
	return s.repo.GetWatchlist(ctx)
}

// AddToWatchlist добавляет сериал с названием title в список пользователя DefaultUserID.
// Повторное добавление того же сериала создает еще одну запись.
func (s *WatchlistService) AddToWatchlist(ctx context.Context, title string) (*repository.GormWatchlist, error) {
	if err := s.checkContextCancelled(ctx, "AddToWatchlist"); err != nil {
		return nil, err
	}
	if err := s.validateField(ctx, "AddToWatchlist", "title", title, "required"); err != nil {
		return nil, err
	}

	entry := &repository.GormWatchlist{
		UserID:  DefaultUserID,
		AddedOn: s.now(),
		Title:   title,
	}

	if err := s.repo.AddToWatchlistByTitle(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: show %q", ErrNotFound, title)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("show %q added to watchlist for user ID: %d", title, entry.UserID))
	return entry, nil
}

// RemoveFromWatchlist удаляет все записи списка просмотра по ID сериала
func (s *WatchlistService) RemoveFromWatchlist(ctx context.Context, showID uint) error {
	if err := s.checkContextCancelled(ctx, "RemoveFromWatchlist"); err != nil {
		return err
	}
	if err := s.validateField(ctx, "RemoveFromWatchlist", "showId", showID, "required"); err != nil {
		return err
	}
	return s.repo.RemoveShowFromWatchlist(ctx, showID)
}
