package repository

import (
	"time"
)

// GormShow представляет модель сериала в базе данных
type GormShow struct {
	ShowID  uint    `gorm:"column:showid;primaryKey"`
	Title   string  `gorm:"column:title"`
	Poster  *string `gorm:"column:poster"`
	Genre   *string `gorm:"column:genre"`
	Seasons *int    `gorm:"column:seasons"`
	Summary *string `gorm:"column:summary"`
}

// TableName возвращает имя таблицы для модели GormShow
func (GormShow) TableName() string {
	return "shows"
}

// GormWatched представляет просмотренный тайтл
type GormWatched struct {
	WatchedID uint   `gorm:"column:watchedid;primaryKey"`
	Title     string `gorm:"column:title"`
}

// TableName возвращает имя таблицы для модели GormWatched
func (GormWatched) TableName() string {
	return "watched"
}

// GormWatchlist представляет модель списка просмотра в базе данных
type GormWatchlist struct {
	WatchlistID uint      `gorm:"column:watchlistid;primaryKey"`
	UserID      uint      `gorm:"column:userid"`
	ShowID      uint      `gorm:"column:showid"`
	AddedOn     time.Time `gorm:"column:addedon"`
	Title       string    `gorm:"column:title"`
}

// TableName возвращает имя таблицы для модели GormWatchlist
func (GormWatchlist) TableName() string {
	return "watchlist"
}

// GormUser представляет пользователя; пароль хранится как есть
type GormUser struct {
	UserID   uint    `gorm:"column:userid;primaryKey"`
	Name     *string `gorm:"column:name"`
	Email    string  `gorm:"column:email"`
	Password string  `gorm:"column:password"`
}

// TableName возвращает имя таблицы для модели GormUser
func (GormUser) TableName() string {
	return "users"
}
