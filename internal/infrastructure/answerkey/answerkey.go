// Package answerkey читает ключи ответов и списки студентов из CSV и XLSX.
//
// Ключ: строки "вопрос,ответ" (single) или "вопрос,1&3&5" (multi), первая строка может быть
// заголовком. Список студентов: "код,имя,фамилия[,группа]" или "код,полное имя".
package answerkey

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"omr-bot/internal/domain/entity"
)

const (
	minChoice = 1
	maxChoice = 5
)

var (
	ErrEmpty       = errors.New("file has no data rows")
	ErrUnsupported = errors.New("unsupported file type")
)

// RowError ошибка в конкретной строке файла (строки с 1).
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// LoadKey читает ключ из файла.
func LoadKey(path string, mode entity.Mode) (*entity.AnswerKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKey(filepath.Base(path), data, mode)
}

// ParseKey разбирает ключ; тип файла определяется по расширению name.
func ParseKey(name string, data []byte, mode entity.Mode) (*entity.AnswerKey, error) {
	rows, err := readRows(name, data)
	if err != nil {
		return nil, err
	}

	single := make(map[int]int)
	multi := make(map[int][]int)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if len(row) < 2 {
			return nil, &RowError{Row: i + 1, Reason: "expected question and answer"}
		}
		q, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			if i == 0 {
				continue // заголовок
			}
			return nil, &RowError{Row: i + 1, Reason: fmt.Sprintf("bad question number %q", row[0])}
		}
		if q < 1 {
			return nil, &RowError{Row: i + 1, Reason: fmt.Sprintf("question number %d must be positive", q)}
		}
		if _, dup := single[q]; dup {
			return nil, &RowError{Row: i + 1, Reason: fmt.Sprintf("question %d is listed twice", q)}
		}
		if _, dup := multi[q]; dup {
			return nil, &RowError{Row: i + 1, Reason: fmt.Sprintf("question %d is listed twice", q)}
		}

		choices, err := parseChoices(row[1])
		if err != nil {
			return nil, &RowError{Row: i + 1, Reason: err.Error()}
		}
		switch mode {
		case entity.ModeSingle:
			if len(choices) != 1 {
				return nil, &RowError{Row: i + 1, Reason: fmt.Sprintf("question %d needs exactly one answer in single mode", q)}
			}
			single[q] = choices[0]
		case entity.ModeMulti:
			multi[q] = choices
		default:
			return nil, fmt.Errorf("unknown mode %q", mode)
		}
	}

	if mode == entity.ModeMulti {
		if len(multi) == 0 {
			return nil, ErrEmpty
		}
		return entity.NewMultiKey(multi), nil
	}
	if len(single) == 0 {
		return nil, ErrEmpty
	}
	return entity.NewSingleKey(single), nil
}

// parseChoices разбирает "3" или "1&3".
func parseChoices(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), "&")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad answer %q", p)
		}
		if v < minChoice || v > maxChoice {
			return nil, fmt.Errorf("answer %d out of range %d..%d", v, minChoice, maxChoice)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty answer")
	}
	return entity.NormalizeSet(out), nil
}

// LoadRoster читает список студентов из файла.
func LoadRoster(path string) (entity.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoster(filepath.Base(path), data)
}

// ParseRoster разбирает список студентов. Строки короче двух колонок пропускаются.
func ParseRoster(name string, data []byte) (entity.Roster, error) {
	rows, err := readRows(name, data)
	if err != nil {
		return nil, err
	}

	roster := make(entity.Roster)
	for i, row := range rows {
		if i == 0 && isRosterHeader(row) {
			continue
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		if len(row) < 2 || row[0] == "" {
			continue
		}

		s := entity.Student{ID: row[0], FirstName: row[1]}
		if len(row) >= 3 {
			s.LastName = row[2]
		}
		if len(row) >= 4 {
			s.Group = row[3]
		}
		roster[s.ID] = s
	}
	if len(roster) == 0 {
		return nil, ErrEmpty
	}
	return roster, nil
}

func isRosterHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(row[0])
	if strings.Contains(first, "STUDENT") || first == "ID" {
		return true
	}
	return len(row) > 1 && strings.Contains(strings.ToUpper(row[1]), "NAME")
}

// readRows возвращает строки первого листа XLSX или строки CSV.
func readRows(name string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return readXLSX(data)
	case ".csv", ".txt", "":
		return readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
