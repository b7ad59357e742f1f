//go:build gocv
// +build gocv

package vision

import (
	"gocv.io/x/gocv"

	"omr-bot/internal/omr"
)

// layout найденные на кадре блоки в виде повёрнутых прямоугольников.
type layout struct {
	ID      omr.Quad
	Columns []omr.Quad
}

// locateBlocks ищет внешние контуры маски и отбирает блок ID и четыре колонки ответов.
func (s *Scorer) locateBlocks(mask gocv.Mat) (*layout, error) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	blobs := make([]omr.Blob, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		blobs = append(blobs, omr.Blob{
			Index:  i,
			Bounds: gocv.BoundingRect(c),
			Area:   gocv.ContourArea(c),
		})
	}

	blocks, err := omr.ClassifyBlocks(blobs, mask.Cols(), mask.Rows(), s.cfg)
	if err != nil {
		return nil, err
	}

	out := &layout{ID: minAreaQuad(contours.At(blocks.ID.Index))}
	for _, col := range blocks.Columns {
		out.Columns = append(out.Columns, minAreaQuad(contours.At(col.Index)))
	}
	return out, nil
}

// minAreaQuad углы прямоугольника минимальной площади вокруг контура.
func minAreaQuad(c gocv.PointVector) omr.Quad {
	var q omr.Quad
	rect := gocv.MinAreaRect(c)
	copy(q[:], rect.Points)
	return q
}
