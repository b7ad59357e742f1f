package omr

import "omr-bot/internal/domain/entity"

// FirstQuestion номер первого вопроса колонки column (с 0).
func FirstQuestion(column, rows int) int {
	return column*rows + 1
}

// AssembleAnswers нумерует результаты колонок подряд: колонка k (с 0) отвечает на вопросы
// FirstQuestion(k, rows)..FirstQuestion(k, rows)+rows-1. Колонка без полного набора из rows
// результатов (сетка не построена) получает Fallback на все свои вопросы, её номер (с 1)
// попадает в failed.
func AssembleAnswers(columns [][]entity.QuestionResult, rows int) (map[int]entity.QuestionResult, []int) {
	answers := make(map[int]entity.QuestionResult, len(columns)*rows)
	var failed []int
	for k, results := range columns {
		first := FirstQuestion(k, rows)
		if len(results) != rows {
			failed = append(failed, k+1)
			for i := 0; i < rows; i++ {
				answers[first+i] = Fallback()
			}
			continue
		}
		for i, r := range results {
			answers[first+i] = r
		}
	}
	return answers, failed
}
