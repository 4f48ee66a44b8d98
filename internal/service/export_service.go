package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"student-portal/internal/timetable"
)

const xlsxSheet = "Timetable"

// ExportXLSX lays the week out as slot rows × weekday columns:
//
//	| Time              | Mon  | Tue  | ... |
//	| 9:00 AM - 10:30 AM | name |      |     |
//
// A cell lists every class placed on it, one per line.
func (s *timetableService) ExportXLSX(ctx context.Context, studentID string) ([]byte, string, error) {
	schedule, _, err := s.generate(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	grid := s.rules.generator.Grid()

	type cellKey struct {
		day  time.Weekday
		slot timetable.Slot
	}
	index := make(map[cellKey][]string)
	for _, c := range schedule {
		key := cellKey{c.Day, c.Slot}
		index[key] = append(index[key], fmt.Sprintf("%s\n%s · %s", c.Course.Name, c.Course.Instructor, c.Room))
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(xlsxSheet, "A", "A", 22)
	lastCol := colName(len(grid.Days))
	f.SetColWidth(xlsxSheet, "B", lastCol, 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	bodyStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// header
	f.SetCellValue(xlsxSheet, cell("A", 1), "Time")
	for i, d := range grid.Days {
		f.SetCellValue(xlsxSheet, cell(colName(i+1), 1), timetable.DayName(d))
	}
	f.SetCellStyle(xlsxSheet, "A1", cell(lastCol, 1), headerStyle)

	// one row per slot
	for r, sl := range grid.Slots {
		row := r + 2
		f.SetCellValue(xlsxSheet, cell("A", row), sl.Display())
		for i, d := range grid.Days {
			text := "-"
			if entries, ok := index[cellKey{d, sl}]; ok {
				text = strings.Join(entries, "\n")
			}
			f.SetCellValue(xlsxSheet, cell(colName(i+1), row), text)
		}
	}
	f.SetCellStyle(xlsxSheet, "A2", cell(lastCol, len(grid.Slots)+1), bodyStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}

	return buf.Bytes(), "timetable.xlsx", nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
