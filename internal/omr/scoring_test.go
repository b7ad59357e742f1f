package omr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func TestScore_Single(t *testing.T) {
	key := entity.NewSingleKey(map[int]int{1: 3})

	cases := []struct {
		name   string
		marked []int
		want   entity.Status
	}{
		{"correct", []int{3}, entity.StatusCorrect},
		{"wrong choice", []int{2}, entity.StatusIncorrect},
		{"blank", []int{}, entity.StatusIncorrect},
		{"several marks containing the answer", []int{2, 3}, entity.StatusMultipleAnswers},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Score(entity.ModeSingle, 1, tc.marked, key)
			require.Equal(t, tc.want, res.Status)
			require.Equal(t, len(res.Answers) > 1, res.HasMultipleAnswers)
			if res.Status == entity.StatusCorrect {
				require.Len(t, res.Answers, 1)
			}
		})
	}
}

func TestScore_SingleWithoutKeyEntry(t *testing.T) {
	key := entity.NewSingleKey(map[int]int{1: 3})
	require.Equal(t, entity.StatusIncorrect, Score(entity.ModeSingle, 7, []int{3}, key).Status)
	require.Equal(t, entity.StatusIncorrect, Score(entity.ModeSingle, 1, []int{3}, nil).Status)
}

func TestScore_Multi(t *testing.T) {
	key := entity.NewMultiKey(map[int][]int{1: {1, 3}, 2: {}})

	cases := []struct {
		name     string
		question int
		marked   []int
		want     entity.Status
	}{
		{"exact set", 1, []int{3, 1}, entity.StatusCorrect},
		{"subset", 1, []int{1}, entity.StatusPartial},
		{"not a subset", 1, []int{1, 2}, entity.StatusIncorrect},
		{"blank", 1, []int{}, entity.StatusIncorrect},
		{"empty key set", 2, []int{1, 2}, entity.StatusNoKey},
		{"missing key entry", 9, []int{4}, entity.StatusNoKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Score(entity.ModeMulti, tc.question, tc.marked, key)
			require.Equal(t, tc.want, res.Status)
			require.Equal(t, len(res.Answers) > 1, res.HasMultipleAnswers)
			if res.Status == entity.StatusCorrect {
				require.Equal(t, key.MultiAnswers(tc.question), res.Answers)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	res := Fallback()
	require.Equal(t, entity.StatusIncorrect, res.Status)
	require.Empty(t, res.Answers)
	require.False(t, res.HasMultipleAnswers)
}
