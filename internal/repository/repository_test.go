package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/watchlist-kata/showtracker/pkg/utils"
)

var showColumns = []string{"showid", "title", "poster", "genre", "seasons", "summary"}

// newMockRepository создает репозиторий поверх go-sqlmock
func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := gorm.Open(dialector, utils.GormConfig(logger))
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewPostgresRepository(db, logger), mock
}

func strPtr(s string) *string { return &s }

func TestListShows(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shows"`)).
		WillReturnRows(sqlmock.NewRows(showColumns).
			AddRow(1, "Dark", "https://img/dark.jpg", "Drama", 3, "Time travel in Winden").
			AddRow(2, "Severance", nil, nil, nil, nil))

	shows, err := repo.ListShows(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 2)

	assert.Equal(t, uint(1), shows[0].ShowID)
	assert.Equal(t, "Dark", shows[0].Title)
	require.NotNil(t, shows[0].Seasons)
	assert.Equal(t, 3, *shows[0].Seasons)
	assert.Nil(t, shows[1].Poster)
	assert.Nil(t, shows[1].Seasons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shows"`)).
		WillReturnRows(sqlmock.NewRows([]string{"showid"}).AddRow(7))

	show := &GormShow{Title: "Dark", Genre: strPtr("Drama")}
	require.NoError(t, repo.CreateShow(context.Background(), show))
	assert.Equal(t, uint(7), show.ShowID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowDuplicateTitle(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shows"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "shows_title_key"`})

	err := repo.CreateShow(context.Background(), &GormShow{Title: "Dark"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Contains(t, err.Error(), `duplicate key value violates unique constraint "shows_title_key"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowOtherError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shows"`)).
		WillReturnError(errors.New("connection reset by peer"))

	err := repo.CreateShow(context.Background(), &GormShow{Title: "Dark"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowsByGenre(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shows" WHERE genre = $1`)).
		WithArgs("Western").
		WillReturnRows(sqlmock.NewRows(showColumns))

	shows, err := repo.ShowsByGenre(context.Background(), "Western")
	require.NoError(t, err)
	assert.Empty(t, shows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowByTitle(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shows" WHERE title = $1`)).
		WithArgs("Dark").
		WillReturnRows(sqlmock.NewRows(showColumns).AddRow(1, "Dark", nil, "Drama", 3, nil))

	show, err := repo.ShowByTitle(context.Background(), "Dark")
	require.NoError(t, err)
	assert.Equal(t, "Dark", show.Title)
	assert.Equal(t, "Drama", *show.Genre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowByTitleNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shows" WHERE title = $1`)).
		WithArgs("Missing").
		WillReturnRows(sqlmock.NewRows(showColumns))

	_, err := repo.ShowByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWatchedLifecycle(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "watched"`)).
		WillReturnRows(sqlmock.NewRows([]string{"watchedid"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "watched"`)).
		WillReturnRows(sqlmock.NewRows([]string{"watchedid", "title"}).AddRow(3, "Dark"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "watched" WHERE watchedid = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &GormWatched{Title: "Dark"}
	require.NoError(t, repo.AddWatched(ctx, entry))
	assert.Equal(t, uint(3), entry.WatchedID)

	watched, err := repo.ListWatched(ctx)
	require.NoError(t, err)
	require.Len(t, watched, 1)
	assert.Equal(t, "Dark", watched[0].Title)

	require.NoError(t, repo.DeleteWatched(ctx, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWatchedMissingIDIsNotAnError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "watched" WHERE watchedid = $1`)).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteWatched(context.Background(), 404))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToWatchlistByTitle(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "shows" WHERE title = \$1`).
		WithArgs("Dark").
		WillReturnRows(sqlmock.NewRows([]string{"showid"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "watchlist"`)).
		WillReturnRows(sqlmock.NewRows([]string{"watchlistid"}).AddRow(11))
	mock.ExpectCommit()

	entry := &GormWatchlist{UserID: 1, Title: "Dark", AddedOn: time.Now()}
	require.NoError(t, repo.AddToWatchlistByTitle(context.Background(), entry))
	assert.Equal(t, uint(4), entry.ShowID)
	assert.Equal(t, uint(11), entry.WatchlistID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToWatchlistByTitleUnknownShowSkipsInsert(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "shows" WHERE title = \$1`).
		WithArgs("Missing").
		WillReturnRows(sqlmock.NewRows([]string{"showid"}))
	mock.ExpectRollback()

	entry := &GormWatchlist{UserID: 1, Title: "Missing", AddedOn: time.Now()}
	err := repo.AddToWatchlistByTitle(context.Background(), entry)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWatchlistListAndRemove(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()
	addedOn := time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "watchlist"`)).
		WillReturnRows(sqlmock.NewRows([]string{"watchlistid", "userid", "showid", "addedon", "title"}).
			AddRow(1, 1, 4, addedOn, "Dark").
			AddRow(2, 1, 4, addedOn, "Dark"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "watchlist" WHERE showid = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))

	entries, err := repo.GetWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, addedOn, entries[0].AddedOn)

	require.NoError(t, repo.RemoveShowFromWatchlist(ctx, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsers(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"userid"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name", "email", "password"}).AddRow(1, "Ann", "a@b.com", "p1"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("nobody@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name", "email", "password"}))

	user := &GormUser{Name: strPtr("Ann"), Email: "a@b.com", Password: "p1"}
	require.NoError(t, repo.CreateUser(ctx, user))
	assert.Equal(t, uint(1), user.UserID)

	found, err := repo.UserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "p1", found.Password)

	_, err = repo.UserByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{
			Severity: "ERROR",
			Code:     "23505",
			Message:  `duplicate key value violates unique constraint "users_email_key"`,
		})

	err := repo.CreateUser(context.Background(), &GormUser{Email: "a@b.com", Password: "p1"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Contains(t, err.Error(), `duplicate key value violates unique constraint "users_email_key"`)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanceledContextSkipsDatabase(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListShows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.DeleteWatched(ctx, 1), context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	for _, table := range []string{"shows", "watched", "watchlist", "users"} {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), repo.db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaStopsOnFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS shows (")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS watched (")).
		WillReturnError(errors.New("permission denied for schema public"))

	err := EnsureSchema(context.Background(), repo.db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watched")
	assert.NoError(t, mock.ExpectationsWereMet())
}
