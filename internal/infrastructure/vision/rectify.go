//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"gocv.io/x/gocv"

	"omr-bot/internal/omr"
)

// warpQuad выпрямляет область четырёхугольника в прямоугольник по длинам его сторон.
func warpQuad(src gocv.Mat, q omr.Quad) gocv.Mat {
	ordered := omr.OrderCorners(q)
	w, h := omr.RectifiedSize(ordered)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	srcPts := gocv.NewPoint2fVectorFromPoints(toPoint2f(ordered[:]))
	defer srcPts.Close()
	dstPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: 0, Y: 0},
		{X: float32(w - 1), Y: 0},
		{X: float32(w - 1), Y: float32(h - 1)},
		{X: 0, Y: float32(h - 1)},
	})
	defer dstPts.Close()

	m := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer m.Close()

	warped := gocv.NewMat()
	gocv.WarpPerspective(src, &warped, m, image.Pt(w, h))
	return warped
}

// rotate поворачивает матрицу на месте.
func rotate(m *gocv.Mat, flag gocv.RotateFlag) {
	dst := gocv.NewMat()
	gocv.Rotate(*m, &dst, flag)
	m.Close()
	*m = dst
}

// overlayWarped возвращает размеченную выпрямленную область обратно в кадр: область
// четырёхугольника заменяется обратной проекцией, остальной кадр не меняется.
func overlayWarped(base *gocv.Mat, warped gocv.Mat, q omr.Quad) error {
	if base.Empty() || warped.Empty() {
		return fmt.Errorf("%w: empty image", omr.ErrOverlay)
	}
	ordered := omr.OrderCorners(q)
	if w, h := omr.RectifiedSize(ordered); w < 1 || h < 1 {
		return fmt.Errorf("%w: degenerate region %v", omr.ErrOverlay, ordered)
	}

	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), base.Rows(), base.Cols(), gocv.MatTypeCV8U)
	defer mask.Close()
	poly := gocv.NewPointsVectorFromPoints([][]image.Point{ordered[:]})
	defer poly.Close()
	gocv.FillPoly(&mask, poly, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	w, h := float32(warped.Cols()), float32(warped.Rows())
	srcPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}})
	defer srcPts.Close()
	dstPts := gocv.NewPoint2fVectorFromPoints(toPoint2f(ordered[:]))
	defer dstPts.Close()

	m := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer m.Close()

	back := gocv.NewMat()
	defer back.Close()
	gocv.WarpPerspective(warped, &back, m, image.Pt(base.Cols(), base.Rows()))
	if back.Type() != base.Type() {
		return fmt.Errorf("%w: type mismatch %v vs %v", omr.ErrOverlay, back.Type(), base.Type())
	}

	back.CopyToWithMask(base, mask)
	return nil
}

// overlay то же, что overlayWarped, но ошибка только логируется: подсветка не влияет на оценку.
func overlay(base *gocv.Mat, warped gocv.Mat, q omr.Quad, label string) {
	if err := overlayWarped(base, warped, q); err != nil {
		log.Printf("Error in overlay for %s: %v", label, err)
	}
}

func toPoint2f(pts []image.Point) []gocv.Point2f {
	out := make([]gocv.Point2f, len(pts))
	for i, p := range pts {
		out[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	return out
}
