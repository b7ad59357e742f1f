package app

import (
	"context"
	"errors"
	"fmt"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

// ErrKeyModeMismatch ключ загружен для другого режима.
var ErrKeyModeMismatch = errors.New("answer key mode does not match the selected mode")

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(u *entity.User) error {
		u.SetState(state)
		return nil
	})
}

// BeginCheck выбирает режим. Ключ другого режима сбрасывается; если ключ уже подходит,
// пользователь сразу может присылать бланки.
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64, mode entity.Mode) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(u *entity.User) error {
		if u.Mode != mode || (u.Key != nil && u.Key.Mode != mode) {
			u.Key = nil
		}
		u.Mode = mode
		if u.Ready() {
			u.SetState(entity.StateAwaitingSheets)
		} else {
			u.SetState(entity.StateAwaitingKey)
		}
		return nil
	})
}

// SetKey сохраняет ключ текущего режима и переводит к приёму бланков.
func (s *UserService) SetKey(ctx context.Context, userID, chatID int64, key *entity.AnswerKey) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(u *entity.User) error {
		if key == nil || key.Len() == 0 {
			return errors.New("answer key is empty")
		}
		if key.Mode != u.Mode {
			return fmt.Errorf("%w: key %s, selected %s", ErrKeyModeMismatch, key.Mode, u.Mode)
		}
		u.SetKey(key)
		u.SetState(entity.StateAwaitingSheets)
		return nil
	})
}

// AwaitRoster ждёт файл со списком студентов.
func (s *UserService) AwaitRoster(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingRoster)
}

// SetRoster сохраняет список студентов и возвращает пользователя туда, где он был по сценарию.
func (s *UserService) SetRoster(ctx context.Context, userID, chatID int64, roster entity.Roster) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(u *entity.User) error {
		u.Roster = roster
		u.SetState(nextState(u))
		return nil
	})
}

// SetDebug включает или выключает отладочные картинки.
func (s *UserService) SetDebug(ctx context.Context, userID, chatID int64, on bool) (*entity.User, error) {
	return s.repo.Update(ctx, userID, chatID, func(u *entity.User) error {
		u.Debug = on
		return nil
	})
}

// Cancel возвращает в главное меню, ключ и список студентов сохраняются.
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

func nextState(u *entity.User) entity.UserState {
	if u.Ready() {
		return entity.StateAwaitingSheets
	}
	if u.Key == nil {
		return entity.StateAwaitingKey
	}
	return entity.StateMainMenu
}
