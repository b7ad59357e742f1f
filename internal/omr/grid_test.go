package omr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func spaced(start, step, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i*step
	}
	return out
}

func answerLines(rows int) GridLines {
	h := append([]int{0, 10, 20}, spaced(30, 20, rows+1)...)
	v := append([]int{0}, spaced(10, 20, 6)...)
	return GridLines{Horizontal: h, Vertical: v}
}

func TestBuildGrid_Answer(t *testing.T) {
	spec := AnswerGridSpec(30, 5)
	grid, err := BuildGrid(answerLines(30), spec, 0.20)
	require.NoError(t, err)
	require.NoError(t, spec.Validate(grid))
	require.Len(t, grid, 30)
	for _, row := range grid {
		require.Len(t, row, 5)
	}
	require.Equal(t, Cell{X: 14, Y: 34, W: 12, H: 12}, grid[0][0])
	require.Equal(t, Cell{X: 94, Y: 614, W: 12, H: 12}, grid[29][4])
}

func TestBuildGrid_TooFewLines(t *testing.T) {
	spec := AnswerGridSpec(30, 5)
	lines := answerLines(30)
	lines.Vertical = lines.Vertical[:5]

	_, err := BuildGrid(lines, spec, 0.20)
	require.True(t, errors.Is(err, ErrGridNotFound))

	var gridErr *GridError
	require.True(t, errors.As(err, &gridErr))
	require.Equal(t, "detection", gridErr.Stage)
	require.Equal(t, 5, gridErr.Vertical)
	require.Equal(t, 7, gridErr.NeedVertical)
}

func TestBuildGrid_SlicingNeedsOneMoreLine(t *testing.T) {
	spec := AnswerGridSpec(30, 5)
	lines := answerLines(29) // ровно rows+3 горизонтальных линий
	require.Len(t, lines.Horizontal, 33)

	_, err := BuildGrid(lines, spec, 0.20)
	var gridErr *GridError
	require.True(t, errors.As(err, &gridErr))
	require.Equal(t, "slicing", gridErr.Stage)
}

func TestBuildGrid_DropsRowsWithEmptyCells(t *testing.T) {
	spec := AnswerGridSpec(3, 2)
	lines := GridLines{
		Horizontal: []int{0, 5, 10, 20, 41, 61, 82},
		Vertical:   []int{0, 10, 31, 52},
	}
	// строка между 41 и 61 имеет чётную высоту 20: при поле 0.5 высота ячейки становится 0
	grid, err := BuildGrid(lines, spec, 0.5)
	require.NoError(t, err)
	require.Len(t, grid, 2)

	var gridErr *GridError
	require.True(t, errors.As(spec.Validate(grid), &gridErr))
	require.Equal(t, 2, gridErr.Rows)
	require.Equal(t, 3, gridErr.NeedRows)
}

func TestBuildGrid_StudentID(t *testing.T) {
	spec := IDGridSpec(12, 10)
	lines := GridLines{
		Horizontal: append([]int{0, 8}, spaced(20, 10, 11)...),
		Vertical:   append([]int{0}, spaced(5, 10, 13)...),
	}
	grid, err := BuildGrid(lines, spec, 0.20)
	require.NoError(t, err)
	require.NoError(t, spec.Validate(grid))
	require.Len(t, grid, 12)
	require.Len(t, grid[0], 10)

	// группа это столбец цифры, ячейки идут сверху вниз
	require.Equal(t, Cell{X: 7, Y: 22, W: 6, H: 6}, grid[0][0])
	require.Equal(t, Cell{X: 7, Y: 32, W: 6, H: 6}, grid[0][1])
	require.Equal(t, Cell{X: 17, Y: 22, W: 6, H: 6}, grid[1][0])
}

func TestBuildGrid_StudentIDThresholds(t *testing.T) {
	spec := IDGridSpec(12, 10)
	lines := GridLines{
		Horizontal: spaced(0, 10, 12),
		Vertical:   spaced(0, 10, 14),
	}
	_, err := BuildGrid(lines, spec, 0.20)
	var gridErr *GridError
	require.True(t, errors.As(err, &gridErr))
	require.Equal(t, 13, gridErr.NeedHorizontal)
	require.Equal(t, 14, gridErr.NeedVertical)
}

func TestShrinkCell(t *testing.T) {
	c := ShrinkCell(100, 200, 150, 230, 0.20)
	require.Equal(t, Cell{X: 110, Y: 206, W: 30, H: 18}, c)
	require.Equal(t, 540, c.Area())
	require.Equal(t, 0, Cell{W: 0, H: 5}.Area())
}
