package port

import (
	"context"

	"omr-bot/internal/domain/entity"
)

// SheetScorer интерфейс распознавания и проверки бланка
type SheetScorer interface {
	// Process распознаёт бланк и проверяет его по ключу ответов
	Process(ctx context.Context, req entity.SheetRequest) (*entity.SheetResult, error)
}
