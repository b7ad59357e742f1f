package omr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderCorners(t *testing.T) {
	q := Quad{{110, 60}, {10, 10}, {10, 60}, {110, 10}}
	require.Equal(t, Quad{{10, 10}, {110, 10}, {110, 60}, {10, 60}}, OrderCorners(q))
}

func TestOrderCorners_Tilted(t *testing.T) {
	q := Quad{{50, 0}, {100, 40}, {60, 90}, {10, 50}}
	ordered := OrderCorners(q)
	require.Equal(t, image.Pt(50, 0), ordered[0])
	require.Equal(t, image.Pt(100, 40), ordered[1])
	require.Equal(t, image.Pt(60, 90), ordered[2])
	require.Equal(t, image.Pt(10, 50), ordered[3])
}

func TestRectifiedSize(t *testing.T) {
	w, h := RectifiedSize(Quad{{10, 10}, {110, 10}, {110, 60}, {10, 60}})
	require.Equal(t, 100, w)
	require.Equal(t, 50, h)
}

func TestRotationRules(t *testing.T) {
	require.True(t, NeedsClockwiseTurn(100, 151, 1.5))
	require.False(t, NeedsClockwiseTurn(100, 150, 1.5))
	require.True(t, NeedsCounterClockwiseTurn(300, 200))
	require.False(t, NeedsCounterClockwiseTurn(200, 200))
}
