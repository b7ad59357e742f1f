package entity

import "sort"

// AnswerKey ключ ответов для одного режима.
type AnswerKey struct {
	Mode   Mode
	Single map[int]int   // вопрос -> вариант 1..5
	Multi  map[int][]int // вопрос -> набор вариантов
}

// NewSingleKey создаёт ключ для режима single.
func NewSingleKey(answers map[int]int) *AnswerKey {
	if answers == nil {
		answers = make(map[int]int)
	}
	return &AnswerKey{Mode: ModeSingle, Single: answers}
}

// NewMultiKey создаёт ключ для режима multi. Наборы нормализуются: без повторов, по возрастанию.
func NewMultiKey(answers map[int][]int) *AnswerKey {
	normalized := make(map[int][]int, len(answers))
	for q, set := range answers {
		normalized[q] = NormalizeSet(set)
	}
	return &AnswerKey{Mode: ModeMulti, Multi: normalized}
}

// Len число вопросов в ключе.
func (k *AnswerKey) Len() int {
	if k == nil {
		return 0
	}
	if k.Mode == ModeMulti {
		return len(k.Multi)
	}
	return len(k.Single)
}

// SingleAnswer правильный вариант для вопроса.
func (k *AnswerKey) SingleAnswer(question int) (int, bool) {
	if k == nil || k.Single == nil {
		return 0, false
	}
	a, ok := k.Single[question]
	return a, ok
}

// MultiAnswers набор правильных вариантов; пустой, если вопроса нет в ключе.
func (k *AnswerKey) MultiAnswers(question int) []int {
	if k == nil || k.Multi == nil {
		return nil
	}
	return k.Multi[question]
}

// NormalizeSet убирает повторы и сортирует набор вариантов.
func NormalizeSet(set []int) []int {
	seen := make(map[int]struct{}, len(set))
	out := make([]int, 0, len(set))
	for _, v := range set {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
