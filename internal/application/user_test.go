package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10, entity.ModeMulti)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingKey, user.State)
	require.Equal(t, entity.ModeMulti, user.Mode)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetKey(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.BeginCheck(ctx, 2, 20, entity.ModeSingle)
	require.NoError(t, err)

	_, err = svc.SetKey(ctx, 2, 20, entity.NewMultiKey(map[int][]int{1: {1, 2}}))
	require.ErrorIs(t, err, ErrKeyModeMismatch)

	_, err = svc.SetKey(ctx, 2, 20, entity.NewSingleKey(nil))
	require.Error(t, err)

	user, err := svc.SetKey(ctx, 2, 20, entity.NewSingleKey(map[int]int{1: 3}))
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSheets, user.State)
	require.True(t, user.Ready())

	// тот же режим: ключ остаётся
	user, err = svc.BeginCheck(ctx, 2, 20, entity.ModeSingle)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSheets, user.State)
	require.NotNil(t, user.Key)

	// другой режим: ключ сбрасывается
	user, err = svc.BeginCheck(ctx, 2, 20, entity.ModeMulti)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingKey, user.State)
	require.Nil(t, user.Key)
}

func TestUserService_Roster(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.AwaitRoster(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingRoster, user.State)

	user, err = svc.SetRoster(ctx, 3, 30, entity.Roster{"1": {ID: "1", FirstName: "A"}})
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingKey, user.State)
	require.Len(t, user.Roster, 1)

	_, err = svc.SetKey(ctx, 3, 30, entity.NewSingleKey(map[int]int{1: 1}))
	require.NoError(t, err)
	user, err = svc.SetRoster(ctx, 3, 30, entity.Roster{})
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSheets, user.State)
}

func TestUserService_SetDebug(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetDebug(ctx, 4, 40, true)
	require.NoError(t, err)
	require.True(t, user.Debug)

	user, err = svc.Get(ctx, 4, 40)
	require.NoError(t, err)
	require.True(t, user.Debug)
}
