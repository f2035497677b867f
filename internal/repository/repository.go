package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation - SQLSTATE нарушения уникального ограничения в PostgreSQL
const uniqueViolation = "23505"

var (
	// ErrRecordNotFound возвращается, когда запись не найдена
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateEntry возвращается при нарушении уникального ограничения
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// ShowRepository представляет интерфейс работы с каталогом сериалов
type ShowRepository interface {
	ListShows(ctx context.Context) ([]GormShow, error)
	CreateShow(ctx context.Context, show *GormShow) error
	ShowsByGenre(ctx context.Context, genre string) ([]GormShow, error)
	ShowByTitle(ctx context.Context, title string) (*GormShow, error)
}

// WatchedRepository представляет интерфейс работы с просмотренными тайтлами
type WatchedRepository interface {
	ListWatched(ctx context.Context) ([]GormWatched, error)
	AddWatched(ctx context.Context, watched *GormWatched) error
	DeleteWatched(ctx context.Context, watchedID uint) error
}

// WatchlistRepository представляет интерфейс репозитория для работы со списком просмотра
type WatchlistRepository interface {
	GetWatchlist(ctx context.Context) ([]GormWatchlist, error)
	AddToWatchlistByTitle(ctx context.Context, entry *GormWatchlist) error
	RemoveShowFromWatchlist(ctx context.Context, showID uint) error
}

// UserRepository представляет интерфейс работы с пользователями
type UserRepository interface {
	ListUsers(ctx context.Context) ([]GormUser, error)
	CreateUser(ctx context.Context, user *GormUser) error
	UserByEmail(ctx context.Context, email string) (*GormUser, error)
}

// PostgresRepository реализует все репозитории сервиса поверх одного пула соединений
type PostgresRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

var (
	_ ShowRepository      = (*PostgresRepository)(nil)
	_ WatchedRepository   = (*PostgresRepository)(nil)
	_ WatchlistRepository = (*PostgresRepository)(nil)
	_ UserRepository      = (*PostgresRepository)(nil)
)

// NewPostgresRepository создает новый экземпляр PostgresRepository
func NewPostgresRepository(db *gorm.DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

// checkContext проверяет отмену контекста перед обращением к базе
func (r *PostgresRepository) checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		r.logger.ErrorContext(ctx, fmt.Sprintf("%s operation canceled", op), slog.Any("error", ctx.Err()))
		return ctx.Err()
	default:
		return nil
	}
}

// isUniqueViolation распознает нарушение уникальности по коду PostgreSQL,
// исходная ошибка драйвера остается в цепочке
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
