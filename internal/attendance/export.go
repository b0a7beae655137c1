package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

var exportHeader = []string{"student_id", "name", "class", "date", "status", "confidence", "recorded_at", "teacher_id"}

// WriteCSV streams attendance records as CSV.
func WriteCSV(w io.Writer, records []model.AttendanceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(exportRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX renders attendance records as a single-sheet workbook.
func WriteXLSX(w io.Writer, records []model.AttendanceRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	for i, rec := range records {
		for col, val := range exportRow(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func exportRow(rec model.AttendanceRecord) []string {
	confidence := ""
	if rec.Confidence != nil {
		confidence = fmt.Sprintf("%.2f", *rec.Confidence)
	}
	return []string{
		rec.StudentID,
		rec.Name,
		rec.ClassName,
		rec.Date,
		rec.Status,
		confidence,
		rec.Timestamp.UTC().Format(time.RFC3339),
		strconv.FormatInt(rec.TeacherID, 10),
	}
}
