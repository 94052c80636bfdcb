package pagination

import (
	"context"
	"fmt"
)

const (
	// MinLimit и MaxLimit - допустимые границы размера страницы.
	MinLimit = 1
	MaxLimit = 100
)

// Page - страница ленты. NextCursor пуст, когда HasMore == false.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasMore    bool
}

// FetchFunc читает не более n элементов, начиная сразу после курсора запроса.
type FetchFunc[T any] func(ctx context.Context, n int) ([]T, error)

// KeyFunc возвращает ключ сортировки элемента.
type KeyFunc[T any] func(item T) Key

// ValidateLimit проверяет, что limit лежит в [MinLimit, MaxLimit].
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("limit %d out of range [%d, %d]: %w", limit, MinLimit, MaxLimit, ErrInvalidArgument)
	}

	return nil
}

// Fetch собирает страницу: запрашивает limit+1 элементов, по лишнему элементу
// определяет HasMore, обрезает выборку до limit и строит NextCursor по последнему
// оставшемуся элементу. Ошибка fetch возвращается как есть (обёрнутой).
func Fetch[T any](ctx context.Context, limit int, fetch FetchFunc[T], keyOf KeyFunc[T]) (*Page[T], error) {
	const op = "pagination.Fetch"

	if err := ValidateLimit(limit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := fetch(ctx, limit+1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := &Page[T]{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		page.NextCursor = Encode(keyOf(page.Items[limit-1]))
	}

	if page.Items == nil {
		page.Items = []T{}
	}

	return page, nil
}
