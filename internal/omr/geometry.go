package omr

import (
	"image"
	"math"
)

// Quad четыре угла повёрнутого прямоугольника минимальной площади вокруг контура.
type Quad [4]image.Point

// OrderCorners упорядочивает углы: левый верхний, правый верхний, правый нижний, левый нижний.
// Левый верхний имеет минимальную сумму x+y, правый нижний максимальную;
// правый верхний минимальную разность y-x, левый нижний максимальную.
func OrderCorners(q Quad) Quad {
	var out Quad
	minSum, maxSum := 0, 0
	minDiff, maxDiff := 0, 0
	for i, p := range q {
		s, d := p.X+p.Y, p.Y-p.X
		if s < q[minSum].X+q[minSum].Y {
			minSum = i
		}
		if s > q[maxSum].X+q[maxSum].Y {
			maxSum = i
		}
		if d < q[minDiff].Y-q[minDiff].X {
			minDiff = i
		}
		if d > q[maxDiff].Y-q[maxDiff].X {
			maxDiff = i
		}
	}
	out[0] = q[minSum]
	out[1] = q[minDiff]
	out[2] = q[maxSum]
	out[3] = q[maxDiff]
	return out
}

// RectifiedSize размер выпрямленной области по упорядоченным углам: наибольшие длины противоположных сторон.
func RectifiedSize(ordered Quad) (width, height int) {
	tl, tr, br, bl := ordered[0], ordered[1], ordered[2], ordered[3]
	width = maxInt(int(dist(br, bl)), int(dist(tr, tl)))
	height = maxInt(int(dist(tr, br)), int(dist(tl, bl)))
	return width, height
}

// NeedsClockwiseTurn блок ID снят боком: высота больше ширины в ratio раз.
func NeedsClockwiseTurn(width, height int, ratio float64) bool {
	return float64(height) > float64(width)*ratio
}

// NeedsCounterClockwiseTurn колонка ответов лежит: ширина больше высоты.
func NeedsCounterClockwiseTurn(width, height int) bool {
	return width > height
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
