package omr

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func rectBlob(idx int, r image.Rectangle) Blob {
	return Blob{Index: idx, Bounds: r, Area: float64(r.Dx() * r.Dy())}
}

// кадр 1000×1400: блок ID наверху и четыре высокие колонки
func sheetBlobs() []Blob {
	return []Blob{
		rectBlob(0, image.Rect(600, 60, 900, 210)), // меньший кандидат в блок ID
		rectBlob(1, image.Rect(520, 500, 670, 1300)),
		rectBlob(2, image.Rect(100, 50, 500, 250)),
		rectBlob(3, image.Rect(50, 500, 200, 1300)),
		rectBlob(4, image.Rect(760, 500, 910, 1300)),
		rectBlob(5, image.Rect(280, 500, 430, 1300)),
		rectBlob(6, image.Rect(10, 10, 20, 20)), // шум
	}
}

func TestClassifyBlocks(t *testing.T) {
	blocks, err := ClassifyBlocks(sheetBlobs(), 1000, 1400, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 2, blocks.ID.Index, "largest qualifying id block wins")

	var order []int
	for _, c := range blocks.Columns {
		order = append(order, c.Index)
	}
	require.Equal(t, []int{3, 5, 1, 4}, order, "columns are sorted left to right")
}

func TestClassifyBlocks_NoIDBlock(t *testing.T) {
	blobs := sheetBlobs()[1:]
	blobs = append(blobs[:1], blobs[2:]...) // без обоих кандидатов в ID

	_, err := ClassifyBlocks(blobs, 1000, 1400, DefaultConfig())
	require.True(t, errors.Is(err, ErrStructureNotFound))

	var se *StructureError
	require.True(t, errors.As(err, &se))
	require.False(t, se.IDFound)
}

func TestClassifyBlocks_WrongColumnCount(t *testing.T) {
	blobs := sheetBlobs()[:5]

	_, err := ClassifyBlocks(blobs, 1000, 1400, DefaultConfig())
	var se *StructureError
	require.True(t, errors.As(err, &se))
	require.True(t, se.IDFound)
	require.Equal(t, 3, se.Columns)
	require.Equal(t, 4, se.Expected)
	require.Contains(t, err.Error(), "found 3 answer columns")
}

func TestClassifyBlocks_IDMustBeNearTop(t *testing.T) {
	blobs := sheetBlobs()
	blobs[0] = rectBlob(0, image.Rect(600, 700, 900, 850))
	blobs[2] = rectBlob(2, image.Rect(100, 600, 500, 800))

	_, err := ClassifyBlocks(blobs, 1000, 1400, DefaultConfig())
	var se *StructureError
	require.True(t, errors.As(err, &se))
	require.False(t, se.IDFound)
}
