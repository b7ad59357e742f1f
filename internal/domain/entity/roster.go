package entity

import "strings"

// NameNotFound подставляется, если кода студента нет в списке.
const NameNotFound = "not found"

// Student запись из списка студентов
type Student struct {
	ID        string
	FirstName string
	LastName  string
	Group     string
}

// FullName имя и фамилия через пробел
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Roster список студентов по коду
type Roster map[string]Student

// Lookup ищет студента по коду.
func (r Roster) Lookup(id string) (Student, bool) {
	s, ok := r[strings.TrimSpace(id)]
	return s, ok
}
