package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// DefaultUserID - идентификатор пользователя, от имени которого пишется список просмотра
const DefaultUserID uint = 1

var (
	// ErrInvalidArgument возвращается, когда не заполнены обязательные поля
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound возвращается, когда запрошенная запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrConflict возвращается при попытке создать сериал с существующим названием
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized возвращается при несовпадении пароля
	ErrUnauthorized = errors.New("unauthorized")
)

var validate = validator.New()

// base содержит общие зависимости сервисов
type base struct {
	logger *slog.Logger
}

// checkContextCancelled проверяет отмену контекста и логирует ошибку
func (b base) checkContextCancelled(ctx context.Context, method string) error {
	select {
	case <-ctx.Done():
		b.logger.ErrorContext(ctx, fmt.Sprintf("%s operation canceled", method), slog.Any("error", ctx.Err()))
		return ctx.Err()
	default:
		return nil
	}
}

// validateInput проверяет наличие обязательных полей по тегам validate
func (b base) validateInput(ctx context.Context, method string, input any) error {
	if err := validate.Struct(input); err != nil {
		b.logger.WarnContext(ctx, fmt.Sprintf("%s: invalid input", method), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// validateField проверяет одно значение по тегу validate
func (b base) validateField(ctx context.Context, method, field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		b.logger.WarnContext(ctx, fmt.Sprintf("%s: %s failed %q check", method, field, tag))
		return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, field, err)
	}
	return nil
}

// optional превращает пустое значение в NULL
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
