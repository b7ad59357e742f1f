// Package export выгружает итоговую ведомость в CSV и XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"omr-bot/internal/domain/entity"
)

const (
	ResultsSheet = "Results"
	DetailSheet  = "Detail"

	// unreadableSortKey ставит нечитаемые коды в конец.
	unreadableSortKey = 999999999999

	processingError = "Processing Error"
)

// WriteCSV пишет ведомость student_id,fname,lname,score,total в UTF-8 с BOM,
// чтобы Excel открыл её без выбора кодировки. Строки сортируются по коду студента.
func WriteCSV(w io.Writer, sheets []entity.GradedSheet) error {
	if _, err := io.WriteString(w, "\xef\xbb\xbf"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"student_id", "fname", "lname", "score", "total"}); err != nil {
		return err
	}
	for _, s := range SortByStudentID(sheets) {
		if err := cw.Write([]string{s.StudentID, s.FirstName, s.LastName, scoreCell(s), strconv.Itoa(s.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SortByStudentID возвращает копию, отсортированную по коду: '-' считается нулём,
// коды не из цифр идут в конце в исходном порядке.
func SortByStudentID(sheets []entity.GradedSheet) []entity.GradedSheet {
	out := make([]entity.GradedSheet, len(sheets))
	copy(out, sheets)
	sort.SliceStable(out, func(i, j int) bool {
		return idSortKey(out[i].StudentID) < idSortKey(out[j].StudentID)
	})
	return out
}

func idSortKey(id string) int64 {
	v, err := strconv.ParseInt(strings.ReplaceAll(id, "-", "0"), 10, 64)
	if err != nil || v < 0 {
		return unreadableSortKey
	}
	return v
}

func scoreCell(s entity.GradedSheet) string {
	if s.Failed() {
		return processingError
	}
	return strconv.Itoa(s.Score)
}

// WriteWorkbook пишет книгу с листом итогов и листом ответов по вопросам.
// Строки идут в переданном порядке; ячейки ответов окрашиваются по статусу.
func WriteWorkbook(w io.Writer, sheets []entity.GradedSheet, questions int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return err
	}

	if err := writeResults(f, sheets); err != nil {
		return fmt.Errorf("results sheet: %w", err)
	}
	if err := writeDetail(f, sheets, questions); err != nil {
		return fmt.Errorf("detail sheet: %w", err)
	}
	return f.Write(w)
}

func writeResults(f *excelize.File, sheets []entity.GradedSheet) error {
	header := []interface{}{"File", "Student ID", "First name", "Last name", "Score", "Total",
		"Multiple answers", "Duplicate", "Failed columns", "Error"}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range sheets {
		var score interface{} = s.Score
		if s.Failed() {
			score = processingError
		}
		row := []interface{}{s.FileName, s.StudentID, s.FirstName, s.LastName, score, s.Total,
			s.MultipleAnswers, yesNo(s.Duplicate), joinInts(s.FailedColumns, ","), s.Error}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(ResultsSheet, "A", "D", 20)
}

func writeDetail(f *excelize.File, sheets []entity.GradedSheet, questions int) error {
	header := []interface{}{"Student ID", "File"}
	for q := 1; q <= questions; q++ {
		header = append(header, fmt.Sprintf("Q%d", q))
	}
	if err := f.SetSheetRow(DetailSheet, "A1", &header); err != nil {
		return err
	}

	styles, err := statusStyles(f)
	if err != nil {
		return err
	}

	for i, s := range sheets {
		rowNum := i + 2
		row := []interface{}{s.StudentID, s.FileName}
		for q := 1; q <= questions; q++ {
			row = append(row, joinInts(s.Answers[q].Answers, "&"))
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DetailSheet, cell, &row); err != nil {
			return err
		}

		for q := 1; q <= questions; q++ {
			a, ok := s.Answers[q]
			if !ok {
				continue
			}
			style, ok := styles[a.Status]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(q+2, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(DetailSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

// statusStyles заливки в цветах подсветки на бланке.
func statusStyles(f *excelize.File) (map[entity.Status]int, error) {
	fills := map[entity.Status]string{
		entity.StatusCorrect:         "#C6EFCE",
		entity.StatusPartial:         "#FFEB9C",
		entity.StatusIncorrect:       "#FFC7CE",
		entity.StatusMultipleAnswers: "#FFC7CE",
	}
	styles := make(map[entity.Status]int, len(fills))
	for status, clr := range fills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{clr}},
		})
		if err != nil {
			return nil, err
		}
		styles[status] = id
	}
	return styles, nil
}

func joinInts(vals []int, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
