package entity

import "time"

// StudentIDFailed ставится в строку результата, если бланк не удалось обработать целиком.
const StudentIDFailed = "ERROR"

// GradedSheet строка итоговой ведомости по одному файлу.
type GradedSheet struct {
	FileName        string
	Mode            Mode
	StudentID       string
	FirstName       string
	LastName        string
	Score           int
	Total           int
	MultipleAnswers int
	Duplicate       bool
	Partial         bool
	FailedColumns   []int
	Error           string
	Answers         map[int]QuestionResult
	RenditionName   string
	CreatedAt       time.Time
}

// StudentName имя для отображения.
func (g GradedSheet) StudentName() string {
	return Student{FirstName: g.FirstName, LastName: g.LastName}.FullName()
}

// Failed сообщает, что бланк не обработан.
func (g GradedSheet) Failed() bool {
	return g.Error != ""
}

// HasIssues требует ли строка внимания проверяющего.
func (g GradedSheet) HasIssues() bool {
	return g.MultipleAnswers > 0 || g.Duplicate || len(g.FailedColumns) > 0
}

// NeedsReview строки, которые показываются первыми и не сортируются.
func (g GradedSheet) NeedsReview() bool {
	name := g.StudentName()
	return g.Failed() || name == "" || name == NameNotFound || !IDReadable(g.StudentID) || g.HasIssues()
}
