package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

const maxSheetName = 31

// XLSXConverter writes one worksheet per day.
type XLSXConverter struct{}

func (XLSXConverter) Write(w io.Writer, tt *model.Timetable) error {
	if tt == nil {
		return fmt.Errorf("export: nothing to write")
	}

	file := xlsx.NewFile()
	used := make(map[string]bool)
	for _, day := range tt.Days {
		sheet, err := file.AddSheet(sheetName(day.Label, used))
		if err != nil {
			return fmt.Errorf("add sheet for %q: %w", day.Label, err)
		}

		header := sheet.AddRow()
		header.AddCell().SetString("Time")
		header.AddCell().SetString("Subject")

		for _, s := range day.Sessions {
			row := sheet.AddRow()
			row.AddCell().SetString(s.Time)
			row.AddCell().SetString(s.Subject)
		}
	}

	// a workbook needs at least one sheet
	if len(tt.Days) == 0 {
		if _, err := file.AddSheet("Timetable"); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func (XLSXConverter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXConverter) Extension() string { return "xlsx" }

// sheetName strips characters xlsx forbids, truncates to 31 runes and
// suffixes a counter when the name was already used.
func sheetName(label string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(label))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Day"
	}
	name = truncate(name, maxSheetName)

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
