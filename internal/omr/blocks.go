package omr

import (
	"image"
	"sort"
)

// Blob внешний контур, сведённый к тому, что нужно для классификации.
type Blob struct {
	Index  int             // номер контура в исходном списке
	Bounds image.Rectangle // ограничивающий прямоугольник
	Area   float64         // площадь контура
}

// Blocks блок кода студента и колонки ответов слева направо.
type Blocks struct {
	ID      Blob
	Columns []Blob
}

// ClassifyBlocks отбирает блок ID и колонки ответов среди контуров кадра width×height.
// Из подходящих под блок ID остаётся наибольший по площади. Колонки сортируются по x:
// колонка k отвечает за вопросы 30(k-1)+1..30k.
func ClassifyBlocks(blobs []Blob, width, height int, cfg Config) (*Blocks, error) {
	imageArea := float64(width * height)
	minArea := imageArea * cfg.MinContourAreaRatio

	var id *Blob
	var columns []Blob
	for i := range blobs {
		b := blobs[i]
		if b.Area <= minArea {
			continue
		}
		w, h := b.Bounds.Dx(), b.Bounds.Dy()
		if h == 0 {
			continue
		}
		aspect := float64(w) / float64(h)
		areaRatio := b.Area / imageArea

		if cfg.IDBlock.match(aspect, areaRatio) && float64(b.Bounds.Min.Y) < float64(height)*cfg.IDMaxTopRatio {
			if id == nil || b.Area > id.Area {
				id = &blobs[i]
				continue
			}
		}

		if cfg.Column.match(aspect, areaRatio) && float64(h) > float64(height)*cfg.ColumnMinRatio {
			columns = append(columns, b)
		}
	}

	if id == nil {
		return nil, &StructureError{Columns: len(columns), Expected: cfg.ColumnCount}
	}
	if len(columns) != cfg.ColumnCount {
		return nil, &StructureError{IDFound: true, Columns: len(columns), Expected: cfg.ColumnCount}
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Bounds.Min.X < columns[j].Bounds.Min.X
	})
	return &Blocks{ID: *id, Columns: columns}, nil
}
