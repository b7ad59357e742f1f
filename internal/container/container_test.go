package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	app "omr-bot/internal/application"
	"omr-bot/internal/domain/entity"
	"omr-bot/internal/infrastructure/storage"
)

type nopScorer struct{}

func (nopScorer) Process(ctx context.Context, req entity.SheetRequest) (*entity.SheetResult, error) {
	return &entity.SheetResult{StudentID: "650000000001"}, nil
}

func TestNew_SharesUserService(t *testing.T) {
	c := New(storage.NewMemoryUserRepository(), storage.NewMemoryResultRepository(), nopScorer{}, app.GradingOptions{})
	ctx := context.Background()

	_, err := c.UserService.BeginCheck(ctx, 1, 1, entity.ModeSingle)
	require.NoError(t, err)
	_, err = c.UserService.SetKey(ctx, 1, 1, entity.NewSingleKey(map[int]int{1: 2}))
	require.NoError(t, err)

	out, err := c.GradingService.GradeSheet(ctx, 1, 1, app.Upload{Name: "a.jpg"})
	require.NoError(t, err)
	require.Equal(t, "650000000001", out.Sheet.StudentID)
	require.Equal(t, 1, out.Sheet.Total)
}
