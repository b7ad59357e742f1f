package port

import (
	"context"

	"omr-bot/internal/domain/entity"
)

// ResultRepository интерфейс хранилища проверенных бланков
type ResultRepository interface {
	// Save добавляет проверенные бланки пользователя
	Save(ctx context.Context, userID int64, sheets ...entity.GradedSheet) error

	// List возвращает проверенные бланки пользователя в порядке добавления
	List(ctx context.Context, userID int64) ([]entity.GradedSheet, error)

	// Clear удаляет результаты пользователя
	Clear(ctx context.Context, userID int64) error
}
