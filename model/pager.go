package model

import "context"

// Pager отдаёт коллекцию постранично.
type Pager[T any] interface {
	// More сообщает, остались ли непрочитанные страницы.
	More() bool
	// Next загружает следующую страницу.
	Next(ctx context.Context) ([]T, error)
}

// Drain вычитывает все страницы и возвращает объединённый результат.
// Pager обязан вернуть More() == false, если очередная страница не сдвинула курсор.
func Drain[T any](ctx context.Context, pager Pager[T]) ([]T, error) {
	var out []T
	for pager.More() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
	}
	return out, nil
}
