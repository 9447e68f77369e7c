package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"farmatrack/internal/repository"
)

// crud общая часть сервисов с числовым ключом: проверка id,
// перевод ErrNotFound в сообщение "<Entity> not found", идемпотентное удаление.
type crud[T any] struct {
	repo   repository.Repository[T, int64]
	entity string
	order  func(a, b T) int
}

func (c crud[T]) list(ctx context.Context) ([]T, error) {
	out, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.entity, err)
	}
	slices.SortFunc(out, c.order)
	return out, nil
}

func (c crud[T]) get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, errIDRequired
	}
	v, err := c.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(c.entity + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", c.entity, id, err)
	}
	return v, nil
}

func (c crud[T]) create(ctx context.Context, v *T) (*T, error) {
	if err := c.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create %s: %w", c.entity, err)
	}
	return v, nil
}

// update загружает строку, применяет mutate и сохраняет целиком
func (c crud[T]) update(ctx context.Context, id int64, mutate func(*T)) (*T, error) {
	v, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(v)
	err = c.repo.Update(ctx, v)
	if errors.Is(err, repository.ErrNotFound) {
		// deleted between load and save
		return nil, notFound(c.entity + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", c.entity, id, err)
	}
	return v, nil
}

// delete отсутствующей строки: успешный no-op
func (c crud[T]) delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errIDRequired
	}
	err := c.repo.Delete(ctx, id)
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("delete %s %d: %w", c.entity, id, err)
}
