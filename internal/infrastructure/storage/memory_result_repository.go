package storage

import (
	"context"
	"sync"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// MemoryResultRepository in-memory хранилище проверенных бланков
type MemoryResultRepository struct {
	mu      sync.RWMutex
	results map[int64][]entity.GradedSheet
}

// NewMemoryResultRepository создаёт новое in-memory хранилище результатов
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		results: make(map[int64][]entity.GradedSheet),
	}
}

// Save добавляет бланки в конец списка пользователя
func (r *MemoryResultRepository) Save(ctx context.Context, userID int64, sheets ...entity.GradedSheet) error {
	if len(sheets) == 0 {
		return nil
	}
	r.mu.Lock()
	r.results[userID] = append(r.results[userID], sheets...)
	r.mu.Unlock()

	return nil
}

// List возвращает копию списка в порядке добавления
func (r *MemoryResultRepository) List(ctx context.Context, userID int64) ([]entity.GradedSheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.results[userID]
	out := make([]entity.GradedSheet, len(stored))
	copy(out, stored)
	return out, nil
}

// Clear удаляет результаты пользователя
func (r *MemoryResultRepository) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.results, userID)
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.ResultRepository = (*MemoryResultRepository)(nil)
