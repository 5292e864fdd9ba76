// Package export produces spreadsheet renditions of a diary record for
// downstream reporting, complementing the printed PDF form.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/samuel-girma/site-diary/internal/diary"
)

// Service produces XLSX bytes for diary exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportDiaryXLSX returns an XLSX workbook (as bytes) with one sheet per
// diary section plus a summary sheet. Sections the record leaves empty
// still get their sheet and header row.
func (s *Service) ExportDiaryXLSX(d diary.Diary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()

	if err := writeSummarySheet(f, d); err != nil {
		return nil, err
	}
	if err := writeTableSheet(f, "Activities",
		[]string{"sn", "Description", "Location", "Quantity", "Unit"},
		len(d.Activities), func(i int) []any {
			a := d.Activities[i]
			return []any{a.SN, a.Description, a.Location, a.Quantity, a.Unit}
		}); err != nil {
		return nil, err
	}
	if err := writeTableSheet(f, "Equipment",
		[]string{"sn", "Equipment", "No", "Operating Hours", "Idle Hours", "Status", "Remarks"},
		len(d.Equipment), func(i int) []any {
			e := d.Equipment[i]
			return []any{e.SN, e.Equipment, e.No, e.OperatingHours, e.IdleHours, e.Status, e.Remarks}
		}); err != nil {
		return nil, err
	}
	if err := writeTableSheet(f, "Personnel",
		[]string{"sn", "Personnel", "No", "Hours", "Role"},
		len(d.Personnel), func(i int) []any {
			p := d.Personnel[i]
			return []any{p.SN, p.Personnel, p.No, p.Hours, p.Role}
		}); err != nil {
		return nil, err
	}
	if err := writeTableSheet(f, "Materials",
		[]string{"Type", "Unit", "Quantity", "Location"},
		len(d.Materials), func(i int) []any {
			m := d.Materials[i]
			return []any{m.Type, m.Unit, m.Quantity, m.Location}
		}); err != nil {
		return nil, err
	}
	if err := writeTableSheet(f, "Unsafe Acts",
		[]string{"sn", "Description", "Severity", "Action Taken"},
		len(d.UnsafeActs), func(i int) []any {
			u := d.UnsafeActs[i]
			return []any{u.SN, u.Description, u.Severity, u.ActionTaken}
		}); err != nil {
		return nil, err
	}

	// Drop the workbook's default sheet; "Summary" becomes active.
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"project", d.Project,
		"date", d.Date,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, d diary.Diary) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][2]any{
		{"Project", d.Project},
		{"Employer", d.Employer},
		{"Consultant", d.Consultant},
		{"Contractor", d.Contractor},
		{"Date", d.Date},
		{"Weather", d.Weather},
		{"Location", d.Location},
		{"Morning Shift", d.TimeMorning},
		{"Afternoon Shift", d.TimeAfternoon},
		{"Activities", len(d.Activities)},
		{"Equipment", len(d.Equipment)},
		{"Personnel", len(d.Personnel)},
		{"Materials", len(d.Materials)},
		{"Unsafe Acts", len(d.UnsafeActs)},
		{"Near Miss", d.NearMiss},
		{"Obstruction", d.Obstruction},
		{"Engineer's Note", d.EngineersNote},
		{"Prepared By", d.PreparedBy},
		{"Checked By", d.CheckedBy},
		{"Approved By", d.ApprovedBy},
	}
	for i, kv := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(sheet, keyCell, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valCell, kv[1]); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	return nil
}

func writeTableSheet(f *excelize.File, sheet string, headers []string, n int, rowAt func(i int) []any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		for col, v := range rowAt(i) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	// First column stays narrow for serial numbers; the rest widen for text.
	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", "A", 6)
	_ = f.SetColWidth(sheet, "B", last, 24)
	return nil
}
