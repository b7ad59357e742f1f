package omr

// Density доля закрашенных пикселей ячейки; 0 для пустой площади.
func Density(nonZero, area int) float64 {
	if area <= 0 {
		return 0
	}
	return float64(nonZero) / float64(area)
}

// MarkedChoices номера вариантов (с 1), плотность которых строго выше threshold.
// Больше одного номера означает несколько отметок в строке.
func MarkedChoices(densities []float64, threshold float64) []int {
	marked := make([]int, 0, len(densities))
	for i, d := range densities {
		if d > threshold {
			marked = append(marked, i+1)
		}
	}
	return marked
}

// MarkedDigit значение цифры кода: индекс ячейки с максимальной плотностью.
// Если максимум не выше threshold, цифра не отмечена. При равенстве побеждает меньший индекс.
func MarkedDigit(densities []float64, threshold float64) (int, bool) {
	best := -1
	for i, d := range densities {
		if d <= threshold {
			continue
		}
		if best < 0 || d > densities[best] {
			best = i
		}
	}
	return best, best >= 0
}
