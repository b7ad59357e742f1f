package omr

import (
	"gonum.org/v1/gonum/floats"
)

// GridLines позиции линий сетки: y горизонтальных и x вертикальных, строго по возрастанию.
type GridLines struct {
	Horizontal []int
	Vertical   []int
}

// KernelSize длина структурного элемента эрозии для стороны extent.
// Длинные линии разметки переживают эрозию, закрашенные кружки нет.
func KernelSize(extent, divisor, limit int) int {
	if divisor <= 0 {
		divisor = 1
	}
	k := extent / divisor
	if k > limit {
		k = limit
	}
	if k < 1 {
		k = 1
	}
	return k
}

// RowProfile сумма интенсивности каждой строки одноканальной маски (профиль для горизонтальных линий).
func RowProfile(pix []byte, width, height int) []float64 {
	profile := make([]float64, height)
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		var sum float64
		for _, v := range row {
			sum += float64(v)
		}
		profile[y] = sum
	}
	return profile
}

// ColumnProfile сумма интенсивности каждого столбца маски (профиль для вертикальных линий).
func ColumnProfile(pix []byte, width, height int) []float64 {
	profile := make([]float64, width)
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		for x, v := range row {
			profile[x] += float64(v)
		}
	}
	return profile
}

// ExtractLinePositions выделяет линии из профиля проекции. Позиции выше peakRatio от максимума
// группируются, если соседние отстоят не больше чем на gap; группа заменяется медианой.
// Пустой или нулевой профиль даёт пустой результат.
func ExtractLinePositions(profile []float64, peakRatio float64, gap int) []int {
	if len(profile) == 0 {
		return nil
	}
	peak := floats.Max(profile)
	if peak <= 0 {
		return nil
	}
	threshold := peak * peakRatio

	var positions, group []int
	for i, v := range profile {
		if v <= threshold {
			continue
		}
		if len(group) > 0 && i-group[len(group)-1] > gap {
			positions = append(positions, median(group))
			group = group[:0]
		}
		group = append(group, i)
	}
	if len(group) > 0 {
		positions = append(positions, median(group))
	}
	return positions
}

// median группы возрастающих позиций; при чётной длине среднее двух центральных с отбрасыванием дробной части.
func median(sorted []int) int {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
