package omr

import (
	"errors"
	"fmt"
)

var (
	ErrDecode            = errors.New("failed to decode image")
	ErrStructureNotFound = errors.New("sheet structure not found")
	ErrGridNotFound      = errors.New("grid lines not found")
	ErrOverlay           = errors.New("annotation overlay failed")
)

// StructureError блок ID не найден или число колонок не совпало. Прерывает проверку бланка.
type StructureError struct {
	IDFound  bool
	Columns  int
	Expected int
}

func (e *StructureError) Error() string {
	if !e.IDFound {
		return fmt.Sprintf("%v: student id block is missing (columns found: %d)", ErrStructureNotFound, e.Columns)
	}
	return fmt.Sprintf("%v: found %d answer columns, expected %d", ErrStructureNotFound, e.Columns, e.Expected)
}

func (e *StructureError) Unwrap() error { return ErrStructureNotFound }

// GridError линий сетки не хватило. Обрабатывается на месте: подставляются значения по умолчанию.
type GridError struct {
	Grid           string
	Stage          string // detection, slicing или rows
	Horizontal     int
	Vertical       int
	NeedHorizontal int
	NeedVertical   int
	Rows           int
	NeedRows       int
}

func (e *GridError) Error() string {
	if e.Stage == "rows" {
		return fmt.Sprintf("%v: %s grid has %d complete rows, expected %d", ErrGridNotFound, e.Grid, e.Rows, e.NeedRows)
	}
	return fmt.Sprintf("%v: %s grid %s failed: found %d h_lines and %d v_lines, required h>=%d, v>=%d",
		ErrGridNotFound, e.Grid, e.Stage, e.Horizontal, e.Vertical, e.NeedHorizontal, e.NeedVertical)
}

func (e *GridError) Unwrap() error { return ErrGridNotFound }
