package storage

import (
	"context"
	"sync"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище сессий. Наружу отдаются копии,
// поэтому обработчики разных сообщений не видят чужих полуготовых изменений.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return clone(r.getLocked(userID, chatID)), nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = clone(user)
	r.mu.Unlock()

	return nil
}

// Update применяет fn к пользователю под блокировкой; при ошибке изменения отбрасываются
func (r *MemoryUserRepository) Update(ctx context.Context, userID, chatID int64, fn func(*entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := clone(r.getLocked(userID, chatID))
	if err := fn(user); err != nil {
		return nil, err
	}
	r.users[userID] = user

	return clone(user), nil
}

func (r *MemoryUserRepository) getLocked(userID, chatID int64) *entity.User {
	if user, exists := r.users[userID]; exists {
		return user
	}

	// Создаём нового пользователя
	user := entity.NewUser(userID, chatID)
	r.users[userID] = user
	return user
}

// clone неглубокая копия: ключ и список студентов после загрузки не меняются, а только заменяются.
func clone(u *entity.User) *entity.User {
	c := *u
	return &c
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
