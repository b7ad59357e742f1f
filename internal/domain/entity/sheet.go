package entity

import (
	"fmt"
	"strings"
)

// Mode режим проверки бланка
type Mode string

const (
	ModeSingle Mode = "single" // ровно один правильный вариант на вопрос
	ModeMulti  Mode = "multi"  // несколько правильных вариантов на вопрос
)

// ParseMode разбирает режим из строки (команда бота, флаг CLI).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSingle:
		return ModeSingle, nil
	case ModeMulti:
		return ModeMulti, nil
	default:
		return "", fmt.Errorf("unknown mode %q (must be single or multi)", s)
	}
}

// Status итог проверки одного вопроса
type Status string

const (
	StatusCorrect         Status = "correct"
	StatusIncorrect       Status = "incorrect"
	StatusPartial         Status = "partial"
	StatusMultipleAnswers Status = "multiple_answers"
	StatusNoKey           Status = "no_key"
)

// StudentIDUnreadable возвращается вместо кода студента, если сетку блока ID не удалось построить.
const StudentIDUnreadable = "Error Reading ID"

// QuestionResult результат распознавания и проверки одного вопроса.
type QuestionResult struct {
	Answers            []int  `json:"answers"` // отмеченные варианты 1..5, по возрастанию
	Status             Status `json:"status"`
	HasMultipleAnswers bool   `json:"has_multiple_answers"`
}

// SheetRequest входные данные для проверки одного бланка.
type SheetRequest struct {
	ImageData []byte
	Filename  string
	Mode      Mode
	Key       *AnswerKey
	DebugDir  string // куда писать веб-версию и отладочные картинки; пусто: не писать
	Debug     bool   // писать полноразмерные отладочные артефакты
}

// SheetResult итог проверки одного бланка.
type SheetResult struct {
	StudentID     string
	Answers       map[int]QuestionResult
	FailedColumns []int  // колонки (1..4), где сетку не нашли и ответы подставлены по умолчанию
	Rendition     []byte // сжатая картинка с подсветкой
	RenditionName string
}

// Score возвращает число вопросов со статусом correct.
func (r *SheetResult) Score() int {
	score := 0
	for _, a := range r.Answers {
		if a.Status == StatusCorrect {
			score++
		}
	}
	return score
}

// MultipleAnswersCount возвращает число вопросов, где отмечено больше одного варианта.
func (r *SheetResult) MultipleAnswersCount() int {
	n := 0
	for _, a := range r.Answers {
		if a.HasMultipleAnswers {
			n++
		}
	}
	return n
}

// HasPartial сообщает, есть ли хотя бы один частично верный ответ.
func (r *SheetResult) HasPartial() bool {
	for _, a := range r.Answers {
		if a.Status == StatusPartial {
			return true
		}
	}
	return false
}

// IDReadable сообщает, прочитан ли код студента полностью.
func IDReadable(id string) bool {
	return id != "" && id != StudentIDUnreadable && !strings.Contains(id, "-")
}
