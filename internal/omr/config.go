// Package omr содержит геометрию и правила распознавания бланка, не зависящие от OpenCV:
// классификацию блоков, выделение линий сетки по профилю проекции, построение ячеек,
// решение об отметке по плотности и проверку по ключу.
package omr

import (
	"image/color"

	"omr-bot/internal/domain/entity"
)

// BlockBounds пределы для отбора контуров блока.
type BlockBounds struct {
	MinAspect    float64 // ширина/высота ограничивающего прямоугольника, строго больше
	MaxAspect    float64
	MinAreaRatio float64 // площадь контура / площадь кадра, строго больше
	MaxAreaRatio float64
}

func (b BlockBounds) match(aspect, areaRatio float64) bool {
	return aspect > b.MinAspect && aspect < b.MaxAspect &&
		areaRatio > b.MinAreaRatio && areaRatio < b.MaxAreaRatio
}

// Palette цвета подсветки.
type Palette struct {
	Correct   color.RGBA
	Partial   color.RGBA
	Incorrect color.RGBA
	IDMark    color.RGBA
	Block     color.RGBA
}

// For цвет подсветки для статуса вопроса.
func (p Palette) For(status entity.Status) color.RGBA {
	switch status {
	case entity.StatusCorrect:
		return p.Correct
	case entity.StatusPartial:
		return p.Partial
	default:
		return p.Incorrect
	}
}

// DefaultPalette зелёный/жёлтый/красный.
func DefaultPalette() Palette {
	return Palette{
		Correct:   color.RGBA{G: 255, A: 255},
		Partial:   color.RGBA{R: 255, G: 255, A: 255},
		Incorrect: color.RGBA{R: 255, A: 255},
		IDMark:    color.RGBA{R: 255, A: 255},
		Block:     color.RGBA{G: 255, A: 255},
	}
}

// Config константы, подобранные под один физический шаблон бланка.
type Config struct {
	MaxDimension        int     // кадр большего размера уменьшается
	BlurKernel          int     // размер ядра GaussianBlur
	ThresholdBlockSize  int     // окно адаптивного порога
	ThresholdC          float32 // смещение адаптивного порога
	MinContourAreaRatio float64 // контуры меньше этой доли кадра отбрасываются

	IDBlock        BlockBounds
	IDMaxTopRatio  float64 // блок ID должен начинаться в верхней части кадра
	Column         BlockBounds
	ColumnMinRatio float64 // высота колонки относительно высоты кадра, строго больше
	ColumnCount    int

	AnswerGrid GridSpec
	IDGrid     GridSpec

	KernelDivisor int     // ядро эрозии = min(сторона/KernelDivisor, MaxKernel)
	MaxKernel     int
	PeakRatio     float64 // доля максимума профиля, выше которой позиция считается линией
	PeakGap       int     // максимальный разрыв внутри группы соседних позиций
	CellMargin    float64 // доля стороны ячейки, срезаемая с каждого края
	MarkThreshold float64 // плотность, строго выше которой ячейка отмечена
	IDRotateRatio float64 // во сколько раз высота блока ID должна превысить ширину для поворота

	Palette Palette
}

// DefaultConfig значения для бланка 4×30 вопросов по 5 вариантов и 12-значного кода.
func DefaultConfig() Config {
	return Config{
		MaxDimension:        2000,
		BlurKernel:          5,
		ThresholdBlockSize:  21,
		ThresholdC:          5,
		MinContourAreaRatio: 0.001,

		IDBlock:        BlockBounds{MinAspect: 0.8, MaxAspect: 3.0, MinAreaRatio: 0.01, MaxAreaRatio: 0.15},
		IDMaxTopRatio:  0.3,
		Column:         BlockBounds{MinAspect: 0.05, MaxAspect: 0.6, MinAreaRatio: 0.008, MaxAreaRatio: 0.15},
		ColumnMinRatio: 0.5,
		ColumnCount:    4,

		AnswerGrid: AnswerGridSpec(30, 5),
		IDGrid:     IDGridSpec(12, 10),

		KernelDivisor: 20,
		MaxKernel:     50,
		PeakRatio:     0.1,
		PeakGap:       5,
		CellMargin:    0.20,
		MarkThreshold: 0.20,
		IDRotateRatio: 1.5,

		Palette: DefaultPalette(),
	}
}

// Questions общее число вопросов на бланке.
func (c Config) Questions() int {
	return c.ColumnCount * c.AnswerGrid.Groups
}
