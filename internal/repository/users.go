package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// ListUsers возвращает всех пользователей вместе с сохраненными паролями
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]GormUser, error) {
	if err := r.checkContext(ctx, "ListUsers"); err != nil {
		return nil, err
	}

	var users []GormUser
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		r.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		return nil, err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("users fetched successfully: %d rows", len(users)))
	return users, nil
}

// CreateUser регистрирует пользователя; занятый email дает ErrDuplicateEntry
func (r *PostgresRepository) CreateUser(ctx context.Context, user *GormUser) error {
	if err := r.checkContext(ctx, "CreateUser"); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, fmt.Sprintf("user with email %q already exists", user.Email))
			return fmt.Errorf("%w: %w", ErrDuplicateEntry, err)
		}
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to create user with email %q", user.Email), slog.Any("error", err))
		return err
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("user created successfully with ID: %d", user.UserID))
	return nil
}

// UserByEmail ищет пользователя по email
func (r *PostgresRepository) UserByEmail(ctx context.Context, email string) (*GormUser, error) {
	if err := r.checkContext(ctx, "UserByEmail"); err != nil {
		return nil, err
	}

	var users []GormUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).Find(&users).Error; err != nil {
		r.logger.ErrorContext(ctx, fmt.Sprintf("failed to get user with email %q", email), slog.Any("error", err))
		return nil, err
	}

	if len(users) == 0 {
		r.logger.WarnContext(ctx, fmt.Sprintf("user not found with email %q", email))
		return nil, ErrRecordNotFound
	}

	r.logger.InfoContext(ctx, fmt.Sprintf("user fetched successfully with ID: %d", users[0].UserID))
	return &users[0], nil
}
