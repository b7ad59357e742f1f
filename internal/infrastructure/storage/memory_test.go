package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreates(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(10), user.ChatID)
	assert.Equal(t, entity.StateMainMenu, user.State)
	assert.Equal(t, entity.ModeSingle, user.Mode)
}

func TestMemoryUserRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	user.SetState(entity.StateAwaitingSheets)

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, entity.StateMainMenu, again.State)

	require.NoError(t, repo.Save(ctx, user))
	again, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, entity.StateAwaitingSheets, again.State)
}

func TestMemoryUserRepository_Update(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Update(ctx, 2, 20, func(u *entity.User) error {
		u.Mode = entity.ModeMulti
		u.SetState(entity.StateAwaitingKey)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ModeMulti, user.Mode)

	_, err = repo.Update(ctx, 2, 20, func(u *entity.User) error {
		u.SetState(entity.StateProcessing)
		return errors.New("boom")
	})
	require.Error(t, err)

	stored, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, entity.StateAwaitingKey, stored.State)
}

func TestMemoryResultRepository(t *testing.T) {
	repo := NewMemoryResultRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, 1, entity.GradedSheet{FileName: "a.jpg"}, entity.GradedSheet{FileName: "b.jpg"}))
	require.NoError(t, repo.Save(ctx, 1, entity.GradedSheet{FileName: "c.jpg"}))
	require.NoError(t, repo.Save(ctx, 2, entity.GradedSheet{FileName: "z.jpg"}))
	require.NoError(t, repo.Save(ctx, 1))

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a.jpg", list[0].FileName)
	assert.Equal(t, "c.jpg", list[2].FileName)

	list[0].FileName = "changed"
	again, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", again[0].FileName)

	require.NoError(t, repo.Clear(ctx, 1))
	list, err = repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	other, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
