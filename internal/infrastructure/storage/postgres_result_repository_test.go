package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestSheetDetails(t *testing.T) {
	sheet := entity.GradedSheet{
		FailedColumns: []int{2},
		Answers: map[int]entity.QuestionResult{
			1:  {Answers: []int{1, 3}, Status: entity.StatusIncorrect, HasMultipleAnswers: true},
			31: {Answers: []int{}, Status: entity.StatusIncorrect},
		},
	}

	js, err := encodeDetails(sheet)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"failed_columns":[2]`)
	assert.Contains(t, string(js), `"1":{"answers":[1,3],"status":"incorrect","has_multiple_answers":true}`)

	var got entity.GradedSheet
	require.NoError(t, decodeDetails(js, &got))
	assert.Equal(t, []int{2}, got.FailedColumns)
	assert.Equal(t, sheet.Answers, got.Answers)
}

func TestSheetDetails_EmptyAnswers(t *testing.T) {
	js, err := encodeDetails(entity.GradedSheet{Error: "decode"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answers":{}}`, string(js))
}

// TestPostgresResultRepository требует живую базу: OMR_TEST_DATABASE_URL.
func TestPostgresResultRepository(t *testing.T) {
	dsn := os.Getenv("OMR_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("OMR_TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	db, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresResultRepository(db)
	const userID = int64(-42)
	require.NoError(t, repo.Clear(ctx, userID))

	require.NoError(t, repo.Save(ctx, userID,
		entity.GradedSheet{FileName: "a.jpg", Mode: entity.ModeSingle, StudentID: "123456789012", Score: 5, Total: 120},
		entity.GradedSheet{FileName: "b.jpg", Mode: entity.ModeSingle, StudentID: entity.StudentIDFailed, Error: "decode"},
	))

	list, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a.jpg", list[0].FileName)
	assert.Equal(t, 5, list[0].Score)
	assert.Equal(t, entity.ModeSingle, list[0].Mode)
	assert.True(t, list[1].Failed())

	require.NoError(t, repo.Clear(ctx, userID))
	list, err = repo.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
