package omr

import "omr-bot/internal/domain/entity"

// Score проверяет отмеченные варианты вопроса по ключу.
//
// single: correct, если отмечен ровно один вариант и он совпадает с ключом; multiple_answers,
// если отмечено больше одного; иначе incorrect.
//
// multi: no_key, если для вопроса нет набора в ключе; correct при точном совпадении наборов;
// partial, если отмеченный набор непустой и входит в правильный; иначе incorrect.
func Score(mode entity.Mode, question int, marked []int, key *entity.AnswerKey) entity.QuestionResult {
	answers := entity.NormalizeSet(marked)
	res := entity.QuestionResult{
		Answers:            answers,
		Status:             entity.StatusIncorrect,
		HasMultipleAnswers: len(answers) > 1,
	}

	switch mode {
	case entity.ModeMulti:
		correct := key.MultiAnswers(question)
		switch {
		case len(correct) == 0:
			res.Status = entity.StatusNoKey
		case equalSets(answers, correct):
			res.Status = entity.StatusCorrect
		case len(answers) > 0 && subset(answers, correct):
			res.Status = entity.StatusPartial
		}
	default:
		correct, ok := key.SingleAnswer(question)
		switch {
		case ok && len(answers) == 1 && answers[0] == correct:
			res.Status = entity.StatusCorrect
		case res.HasMultipleAnswers:
			res.Status = entity.StatusMultipleAnswers
		}
	}
	return res
}

// Fallback результат вопроса колонки, сетку которой не удалось построить.
func Fallback() entity.QuestionResult {
	return entity.QuestionResult{Answers: []int{}, Status: entity.StatusIncorrect}
}

func equalSets(a, b []int) bool {
	b = entity.NormalizeSet(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func subset(a, b []int) bool {
	in := make(map[int]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}
	for _, v := range a {
		if _, ok := in[v]; !ok {
			return false
		}
	}
	return true
}
