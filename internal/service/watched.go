package service

import (
	"context"
	"log/slog"

	"github.com/watchlist-kata/showtracker/internal/repository"
)

// WatchedService ведет список просмотренных тайтлов, не связанный с каталогом
type WatchedService struct {
	base
	repo repository.WatchedRepository
}

// NewWatchedService создает новый экземпляр WatchedService
func NewWatchedService(repo repository.WatchedRepository, logger *slog.Logger) *WatchedService {
	return &WatchedService{base: base{logger: logger}, repo: repo}
}

// ListWatched возвращает все просмотренные тайтлы
func (s *WatchedService) ListWatched(ctx context.Context) ([]repository.GormWatched, error) {
	if err := s.checkContextCancelled(ctx, "ListWatched"); err != nil {
		return nil, err
	}
	return s.repo.ListWatched(ctx)
}

// MarkWatched сохраняет тайтл; проверки на дубликаты нет
func (s *WatchedService) MarkWatched(ctx context.Context, title string) (*repository.GormWatched, error) {
	if err := s.checkContextCancelled(ctx, "MarkWatched"); err != nil {
		return nil, err
	}
	if err := s.validateField(ctx, "MarkWatched", "title", title, "required"); err != nil {
		return nil, err
	}

	entry := &repository.GormWatched{Title: title}
	if err := s.repo.AddWatched(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveWatched удаляет запись; несуществующий ID не отличается от успешного удаления
func (s *WatchedService) RemoveWatched(ctx context.Context, watchedID uint) error {
	if err := s.checkContextCancelled(ctx, "RemoveWatched"); err != nil {
		return err
	}
	if err := s.validateField(ctx, "RemoveWatched", "watchedId", watchedID, "required"); err != nil {
		return err
	}
	return s.repo.DeleteWatched(ctx, watchedID)
}
