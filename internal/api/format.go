package telegram

import (
	"fmt"
	"strings"

	"omr-bot/internal/domain/entity"
)

// maxListed строк ведомости в одном сообщении; полная ведомость уходит файлом.
const maxListed = 30

// prompt подсказка, что делать дальше в текущем состоянии
func prompt(user *entity.User) string {
	switch user.State {
	case entity.StateAwaitingKey:
		if user.Mode == entity.ModeMulti {
			return msgAwaitingKeyMulti
		}
		return msgAwaitingKeySingle
	case entity.StateAwaitingRoster:
		return msgSendRoster
	case entity.StateAwaitingSheets:
		return msgAwaitingSheets
	case entity.StateProcessing:
		return msgProcessing
	default:
		return msgChooseMode
	}
}

// formatSheet итог по одному бланку
func formatSheet(s entity.GradedSheet) string {
	if s.Failed() {
		return fmt.Sprintf("⚠️ %s: бланк не распознан (%s)", s.FileName, s.Error)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s\n", s.FileName)
	fmt.Fprintf(&b, "Код: %s\n", s.StudentID)
	fmt.Fprintf(&b, "Студент: %s\n", s.StudentName())
	fmt.Fprintf(&b, "Балл: %d/%d", s.Score, s.Total)

	for _, w := range warnings(s) {
		b.WriteString("\n⚠️ ")
		b.WriteString(w)
	}
	return b.String()
}

func warnings(s entity.GradedSheet) []string {
	var out []string
	if !entity.IDReadable(s.StudentID) {
		out = append(out, "код прочитан не полностью")
	}
	if s.StudentName() == entity.NameNotFound {
		out = append(out, "кода нет в списке студентов")
	}
	if s.Duplicate {
		out = append(out, "этот код уже встречался")
	}
	if s.MultipleAnswers > 0 {
		out = append(out, fmt.Sprintf("несколько отметок в %d вопросах", s.MultipleAnswers))
	}
	if s.Partial {
		out = append(out, "есть частично верные ответы")
	}
	if len(s.FailedColumns) > 0 {
		cols := make([]string, len(s.FailedColumns))
		for i, c := range s.FailedColumns {
			cols[i] = fmt.Sprint(c)
		}
		out = append(out, "не распознаны колонки "+strings.Join(cols, ", "))
	}
	return out
}

// formatResults краткая ведомость; строки, требующие проверки, помечены
func formatResults(sheets []entity.GradedSheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Проверено бланков: %d\n", len(sheets))

	for i, s := range sheets {
		if i == maxListed {
			fmt.Fprintf(&b, "… и ещё %d", len(sheets)-maxListed)
			break
		}
		mark := "✅"
		if s.NeedsReview() {
			mark = "⚠️"
		}
		if s.Failed() {
			fmt.Fprintf(&b, "%s %s — ошибка обработки\n", mark, s.FileName)
			continue
		}
		fmt.Fprintf(&b, "%s %s %s — %d/%d\n", mark, s.StudentID, s.StudentName(), s.Score, s.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseSwitch разбирает аргумент on/off
func parseSwitch(arg string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on", "1", "true", "вкл":
		return true, true
	case "off", "0", "false", "выкл":
		return false, true
	default:
		return false, false
	}
}
