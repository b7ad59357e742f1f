package omr

import "image"

// Cell прямоугольник ячейки внутри выпрямленного блока, уже ужатый на поля.
type Cell struct {
	X, Y, W, H int
}

// Rect прямоугольник ячейки в координатах блока.
func (c Cell) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.W, c.Y+c.H)
}

// Area площадь ячейки; 0 для вырожденной.
func (c Cell) Area() int {
	if c.W <= 0 || c.H <= 0 {
		return 0
	}
	return c.W * c.H
}

// ShrinkCell ячейка между линиями (x1,y1)-(x2,y2), ужатая на margin от каждой стороны,
// чтобы пиксели линий разметки не попадали в подсчёт плотности.
func ShrinkCell(x1, y1, x2, y2 int, margin float64) Cell {
	w, h := x2-x1, y2-y1
	mx, my := int(float64(w)*margin), int(float64(h)*margin)
	return Cell{X: x1 + mx, Y: y1 + my, W: w - 2*mx, H: h - 2*my}
}

// Grid ячейки по группам: строка вопроса из вариантов или столбец цифры кода из значений 0..9.
type Grid [][]Cell

// GridSpec раскладка сетки блока.
type GridSpec struct {
	Name           string
	Groups         int // вопросов в колонке или цифр в коде
	Cells          int // вариантов ответа или значений цифры
	MinHorizontal  int
	MinVertical    int
	SkipHorizontal int  // линии шапки сверху
	SkipVertical   int  // линии рамки слева
	Transposed     bool // группы идут по вертикальным линиям (блок ID)
}

// AnswerGridSpec колонка ответов: rows вопросов по choices вариантов, три линии шапки, одна рамки.
func AnswerGridSpec(rows, choices int) GridSpec {
	return GridSpec{
		Name:           "answer",
		Groups:         rows,
		Cells:          choices,
		MinHorizontal:  rows + 3,
		MinVertical:    choices + 2,
		SkipHorizontal: 3,
		SkipVertical:   1,
	}
}

// IDGridSpec блок кода: digits столбцов по values значений, две линии шапки, одна рамки.
func IDGridSpec(digits, values int) GridSpec {
	return GridSpec{
		Name:           "student id",
		Groups:         digits,
		Cells:          values,
		MinHorizontal:  values + 3,
		MinVertical:    digits + 2,
		SkipHorizontal: 2,
		SkipVertical:   1,
		Transposed:     true,
	}
}

// BuildGrid делит пространство между линиями на ячейки. Группа попадает в результат,
// только если все её ячейки имеют положительную площадь; проверку числа групп делает Validate.
func BuildGrid(lines GridLines, spec GridSpec, margin float64) (Grid, error) {
	h, v := lines.Horizontal, lines.Vertical
	if len(h) < spec.MinHorizontal || len(v) < spec.MinVertical ||
		len(h) < spec.SkipHorizontal || len(v) < spec.SkipVertical {
		return nil, &GridError{
			Grid: spec.Name, Stage: "detection",
			Horizontal: len(h), Vertical: len(v),
			NeedHorizontal: spec.MinHorizontal, NeedVertical: spec.MinVertical,
		}
	}
	h, v = h[spec.SkipHorizontal:], v[spec.SkipVertical:]

	groupLines, cellLines := h, v
	needH, needV := spec.Groups+1, spec.Cells+1
	if spec.Transposed {
		groupLines, cellLines = v, h
		needH, needV = spec.Cells+1, spec.Groups+1
	}
	if len(groupLines) <= spec.Groups || len(cellLines) <= spec.Cells {
		return nil, &GridError{
			Grid: spec.Name, Stage: "slicing",
			Horizontal: len(h), Vertical: len(v),
			NeedHorizontal: needH, NeedVertical: needV,
		}
	}

	grid := make(Grid, 0, spec.Groups)
	for i := 0; i < spec.Groups; i++ {
		group := make([]Cell, 0, spec.Cells)
		for j := 0; j < spec.Cells; j++ {
			a1, a2 := groupLines[i], groupLines[i+1]
			b1, b2 := cellLines[j], cellLines[j+1]
			var c Cell
			if spec.Transposed {
				c = ShrinkCell(a1, b1, a2, b2, margin)
			} else {
				c = ShrinkCell(b1, a1, b2, a2, margin)
			}
			if c.W > 0 && c.H > 0 {
				group = append(group, c)
			}
		}
		if len(group) == spec.Cells {
			grid = append(grid, group)
		}
	}
	return grid, nil
}

// Validate проверяет, что сетка полная.
func (s GridSpec) Validate(grid Grid) error {
	if len(grid) != s.Groups {
		return &GridError{Grid: s.Name, Stage: "rows", Rows: len(grid), NeedRows: s.Groups}
	}
	return nil
}
