//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"omr-bot/internal/omr"
)

// detectGridLines находит линии разметки на выпрямленной маске: эрозия длинным горизонтальным
// и вертикальным элементом оставляет только линии, затем профили проекции дают их позиции.
func (s *Scorer) detectGridLines(mask gocv.Mat) omr.GridLines {
	w, h := mask.Cols(), mask.Rows()
	if w == 0 || h == 0 {
		return omr.GridLines{}
	}

	hKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(omr.KernelSize(w, s.cfg.KernelDivisor, s.cfg.MaxKernel), 1))
	defer hKernel.Close()
	horizontal := gocv.NewMat()
	defer horizontal.Close()
	gocv.Erode(mask, &horizontal, hKernel)

	vKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(1, omr.KernelSize(h, s.cfg.KernelDivisor, s.cfg.MaxKernel)))
	defer vKernel.Close()
	vertical := gocv.NewMat()
	defer vertical.Close()
	gocv.Erode(mask, &vertical, vKernel)

	return omr.GridLines{
		Horizontal: omr.ExtractLinePositions(omr.RowProfile(horizontal.ToBytes(), w, h), s.cfg.PeakRatio, s.cfg.PeakGap),
		Vertical:   omr.ExtractLinePositions(omr.ColumnProfile(vertical.ToBytes(), w, h), s.cfg.PeakRatio, s.cfg.PeakGap),
	}
}

// buildGrid строит и проверяет сетку блока.
func (s *Scorer) buildGrid(mask gocv.Mat, spec omr.GridSpec) (omr.Grid, error) {
	grid, err := omr.BuildGrid(s.detectGridLines(mask), spec, s.cfg.CellMargin)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// cellDensities плотность закрашенных пикселей в каждой ячейке группы.
func cellDensities(mask gocv.Mat, cells []omr.Cell) []float64 {
	bounds := image.Rect(0, 0, mask.Cols(), mask.Rows())
	densities := make([]float64, len(cells))
	for i, c := range cells {
		r := c.Rect().Intersect(bounds)
		if r.Empty() {
			continue
		}
		roi := mask.Region(r)
		densities[i] = omr.Density(gocv.CountNonZero(roi), r.Dx()*r.Dy())
		roi.Close()
	}
	return densities
}
