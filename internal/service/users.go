package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/watchlist-kata/showtracker/internal/repository"
)

// Signup - данные регистрации; пароль сохраняется без хеширования
type Signup struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Credentials - данные для входа
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// UserService регистрирует пользователей и проверяет их пароли
type UserService struct {
	base
	repo repository.UserRepository
}

// NewUserService создает новый экземпляр UserService
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{base: base{logger: logger}, repo: repo}
}

// ListUsers возвращает всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]repository.GormUser, error) {
	if err := s.checkContextCancelled(ctx, "ListUsers"); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

// Signup создает пользователя. Занятый email возвращается как внутренняя ошибка, а не ErrConflict.
func (s *UserService) Signup(ctx context.Context, in Signup) error {
	if err := s.checkContextCancelled(ctx, "Signup"); err != nil {
		return err
	}
	if err := s.validateInput(ctx, "Signup", in); err != nil {
		return err
	}

	user := &repository.GormUser{
		Name:     &in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
	return s.repo.CreateUser(ctx, user)
}

// Login сравнивает пароль с сохраненным; токен или сессия не выдаются
func (s *UserService) Login(ctx context.Context, in Credentials) error {
	if err := s.checkContextCancelled(ctx, "Login"); err != nil {
		return err
	}
	if err := s.validateInput(ctx, "Login", in); err != nil {
		return err
	}

	user, err := s.repo.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return fmt.Errorf("%w: email %q", ErrNotFound, in.Email)
		}
		return err
	}

	if in.Password != user.Password {
		s.logger.WarnContext(ctx, fmt.Sprintf("password mismatch for user ID: %d", user.UserID))
		return ErrUnauthorized
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("user logged in with ID: %d", user.UserID))
	return nil
}
