package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// schemaStatements создают таблицы, если их ещё нет; порядок важен из-за внешнего ключа watchlist -> shows
var schemaStatements = []struct {
	table string
	ddl   string
}{
	{"shows", `CREATE TABLE IF NOT EXISTS shows (
		ShowId SERIAL PRIMARY KEY,
		Title VARCHAR(255) UNIQUE NOT NULL,
		Poster VARCHAR(500),
		Genre VARCHAR(100),
		Seasons INT,
		Summary TEXT
	)`},
	{"watched", `CREATE TABLE IF NOT EXISTS watched (
		WatchedId SERIAL PRIMARY KEY,
		Title VARCHAR(255) NOT NULL
	)`},
	{"watchlist", `CREATE TABLE IF NOT EXISTS watchlist (
		WatchlistId SERIAL PRIMARY KEY,
		UserId INT NOT NULL,
		ShowId INT NOT NULL REFERENCES shows(ShowId) ON DELETE CASCADE,
		AddedOn TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		Title VARCHAR(255) NOT NULL
	)`},
	{"users", `CREATE TABLE IF NOT EXISTS users (
		UserId SERIAL PRIMARY KEY,
		Name VARCHAR(255),
		Email VARCHAR(255) UNIQUE NOT NULL,
		Password VARCHAR(255) NOT NULL
	)`},
}

// EnsureSchema создает все таблицы сервиса; повторный вызов ничего не меняет
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	for _, stmt := range schemaStatements {
		if err := db.WithContext(ctx).Exec(stmt.ddl).Error; err != nil {
			return fmt.Errorf("failed to create table %s: %w", stmt.table, err)
		}
	}
	return nil
}
