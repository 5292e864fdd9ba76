// Package render draws the fixed single-page Daily Diary form. The layout
// is a faithful reproduction of the reference sheet: every section has a
// fixed height in millimetres and rows beyond a section's printed capacity
// are silently clipped.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/samuel-girma/site-diary/internal/diary"
)

// Printed capacities of the form.
const (
	maxActivityRows  = 5
	maxEquipmentRows = 10 // two sub-columns of 5
	maxPersonnelRows = 28 // two sub-columns of 14
	maxUnsafeActRows = 2
)

const (
	pageLeft  = 10.0 // left margin, also the form border x
	pageRight = 200.0
	formWidth = 190.0
)

type Generator struct {
	logos  LogoSet
	logger *slog.Logger
}

func NewGenerator(logos LogoSet, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logos: logos, logger: logger}
}

// Render produces the single-page form as PDF bytes. Rendering is
// deterministic: identical records yield byte-identical documents. This is
// the one pipeline stage where failure is a hard error.
func (g *Generator) Render(d diary.Diary) ([]byte, error) {
	start := time.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())
	pdf.SetMargins(pageLeft, pageLeft, pageLeft)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)

	y := pageLeft
	y = g.drawHeader(pdf, y)
	y = g.drawTitle(pdf, d, y)
	y = g.drawProject(pdf, d, y)
	y = g.drawDateWeather(pdf, d, y)
	y = g.drawActivities(pdf, d, y)
	y = g.drawEquipment(pdf, d, y)
	y = g.drawPersonnel(pdf, d, y)
	y = g.drawUnsafeActs(pdf, d, y)
	y = g.drawNotes(pdf, d, y)
	g.drawSignatures(pdf, d, y)

	if pdf.Err() {
		return nil, fmt.Errorf("render diary form: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render diary form: %w", err)
	}

	g.logger.Info("render.ok",
		"bytes", buf.Len(),
		"activities", len(d.Activities),
		"equipment", len(d.Equipment),
		"personnel", len(d.Personnel),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// drawHeader renders the letterhead band: lead logo, company block, and
// the joint-venture partner logo.
func (g *Generator) drawHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	const h = 22.0

	pdf.Rect(pageLeft, y, formWidth, h, "D")
	pdf.Line(85, y, 85, y+h)
	pdf.Line(160, y, 160, y+h)

	if !drawLogo(pdf, "logo-lead", resolveLogo(g.logos.NicholasBytes, g.logos.NicholasPaths), 12, y+h-20, 30, 10) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(12, y+h-15, "NICHOLAS")
		pdf.Text(12, y+h-10, "O'DWYER")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(87, y+h-17, "Company Name")
	pdf.SetFont("Helvetica", "", 6)
	pdf.Text(87, y+h-14, "Unit E4, Nutgrove Office Park,")
	pdf.Text(87, y+h-11.5, "Nutgrove Avenue, Dublin 14")
	pdf.Text(87, y+h-9, "T +353 1 296 9000")
	pdf.Text(87, y+h-6.5, "F +353 1 296 9001")
	pdf.Text(87, y+h-4, "E dublin@nodwyer.com")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(162, y+h-17, "in Jv with")
	if !drawLogo(pdf, "logo-partner", resolveLogo(g.logos.MSBytes, g.logos.MSPaths), 162, y+h-15, 35, 12) {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Text(162, y+h-10, "MS Consultancy")
	}

	return y + h
}

func (g *Generator) drawTitle(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 10.0

	pdf.Rect(pageLeft, y, formWidth, h, "D")
	pdf.Line(80, y, 80, y+h)
	pdf.Line(135, y, 135, y+h)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(12, y+h-4, "Title: Daily Diary")
	pdf.Text(82, y+h-4, fitLine(pdf, "Document No: "+d.DocumentNumber, 51))
	pageNo := "Page No.   of"
	if d.PageNumber != "" {
		pageNo = "Page No. " + d.PageNumber
	}
	pdf.Text(137, y+h-4, fitLine(pdf, pageNo, 61))

	return y + h
}

func (g *Generator) drawProject(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 14.0
	colW := formWidth / 4

	pdf.Rect(pageLeft, y, formWidth, h, "D")
	for i := 1; i < 4; i++ {
		x := pageLeft + float64(i)*colW
		pdf.Line(x, y, x, y+h)
	}

	headers := []string{"PROJECT", "EMPLOYER", "CONSULTANT", "CONTRACTOR"}
	values := []string{d.Project, d.Employer, d.Consultant, d.Contractor}

	pdf.SetFont("Helvetica", "B", 8)
	for i, hd := range headers {
		pdf.Text(12+float64(i)*colW, y+3, hd)
	}
	pdf.SetFont("Helvetica", "", 7)
	for i, v := range values {
		pdf.Text(12+float64(i)*colW, y+h-7, fitLine(pdf, v, colW-4))
	}

	return y + h
}

func (g *Generator) drawDateWeather(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 8.0

	pdf.Rect(pageLeft, y, formWidth, h, "D")
	pdf.Line(50, y, 50, y+h)
	pdf.Line(130, y, 130, y+h)
	pdf.Line(160, y, 160, y+h)

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+h-3, fitLine(pdf, "1. Date: "+d.Date, 36))
	pdf.Text(52, y+h-3, fitLine(pdf, "Weather condition: "+d.Weather, 76))
	pdf.Text(132, y+h-3, "Morning")
	pdf.Text(162, y+h-3, "Afternoon")

	// Core fonts carry no box-glyph, so shift checkboxes render as [X]/[ ].
	pdf.Text(145, y+h-3, checkbox(d.TimeMorning))
	pdf.Text(180, y+h-3, checkbox(d.TimeAfternoon))

	return y + h
}

func checkbox(checked bool) string {
	if checked {
		return "[X]"
	}
	return "[ ]"
}

func (g *Generator) drawActivities(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 25.0
	const rowH = 3.8

	pdf.Rect(pageLeft, y, formWidth, h, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+3, "3. Major Activities on progress, Chain age and Location")

	headerY := y + 6
	pdf.Line(pageLeft, headerY, pageRight, headerY)
	pdf.Line(20, headerY, 20, y+h)

	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(12, headerY-1, "sn")
	pdf.Text(22, headerY-1, "Description/Topic - Contractor's work")

	pdf.SetFont("Helvetica", "", 6)
	for i := 0; i < maxActivityRows; i++ {
		rowY := headerY + float64(i+1)*rowH
		pdf.Line(pageLeft, rowY, pageRight, rowY)
		if i < len(d.Activities) {
			a := d.Activities[i]
			pdf.Text(12, rowY-1, fmt.Sprintf("%d", a.SN))
			pdf.Text(22, rowY-1, fitLine(pdf, activityLine(a), 175))
		}
	}

	return y + h
}

// activityLine folds the optional location and quantity columns into the
// single printed description cell.
func activityLine(a diary.Activity) string {
	s := a.Description
	if a.Location != "" {
		s += " @ " + a.Location
	}
	if a.Quantity != "" {
		s += " (" + a.Quantity
		if a.Unit != "" {
			s += " " + a.Unit
		}
		s += ")"
	}
	return s
}

func (g *Generator) drawEquipment(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 22.0
	const rowH = 3.2
	const perCol = maxEquipmentRows / 2

	pdf.Rect(pageLeft, y, formWidth, h, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+3, "4. Contractor's Equipment (dumper truck, excavator, water pump etc.)")

	headerY := y + 6
	pdf.Line(pageLeft, headerY, pageRight, headerY)
	for _, x := range []float64{20, 45, 70, 105, 130, 155} {
		pdf.Line(x, headerY, x, y+h)
	}

	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(12, headerY-1, "sn")
	pdf.Text(22, headerY-1, "Equipment")
	pdf.Text(72, headerY-1, "NO")
	pdf.Text(107, headerY-1, "sn")
	pdf.Text(132, headerY-1, "Equipment")
	pdf.Text(157, headerY-1, "NO")

	pdf.SetFont("Helvetica", "", 6)
	for i := 0; i < perCol; i++ {
		rowY := headerY + float64(i+1)*rowH
		pdf.Line(pageLeft, rowY, pageRight, rowY)

		if i < len(d.Equipment) {
			eq := d.Equipment[i]
			pdf.Text(12, rowY-0.5, fmt.Sprintf("%d", eq.SN))
			pdf.Text(22, rowY-0.5, fitLine(pdf, eq.Equipment, 45))
			pdf.Text(72, rowY-0.5, fitLine(pdf, eq.No, 31))
		}
		if right := i + perCol; right < len(d.Equipment) && right < maxEquipmentRows {
			eq := d.Equipment[right]
			pdf.Text(107, rowY-0.5, fmt.Sprintf("%d", eq.SN))
			pdf.Text(132, rowY-0.5, fitLine(pdf, eq.Equipment, 45))
			pdf.Text(157, rowY-0.5, fitLine(pdf, eq.No, 41))
		}
	}

	return y + h
}

func (g *Generator) drawPersonnel(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 55.0
	const rowH = 3.5
	const perCol = maxPersonnelRows / 2

	pdf.Rect(pageLeft, y, formWidth, h, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+3, "5. Contractor's Personnel (Foreman, laborer, driver etc.)")

	headerY := y + 6
	pdf.Line(pageLeft, headerY, pageRight, headerY)
	for _, x := range []float64{20, 45, 70, 105, 130, 155} {
		pdf.Line(x, headerY, x, y+h)
	}

	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(12, headerY-1, "sn")
	pdf.Text(22, headerY-1, "Personnel")
	pdf.Text(72, headerY-1, "No.")
	pdf.Text(107, headerY-1, "sn")
	pdf.Text(132, headerY-1, "Personnel")
	pdf.Text(157, headerY-1, "No.")

	pdf.SetFont("Helvetica", "", 6)
	for i := 0; i < perCol; i++ {
		rowY := headerY + float64(i+1)*rowH
		pdf.Line(pageLeft, rowY, pageRight, rowY)

		if i < len(d.Personnel) {
			p := d.Personnel[i]
			pdf.Text(12, rowY-0.5, fmt.Sprintf("%d", p.SN))
			pdf.Text(22, rowY-0.5, fitLine(pdf, p.Personnel, 45))
			pdf.Text(72, rowY-0.5, fitLine(pdf, p.No, 31))
		}
		if right := i + perCol; right < len(d.Personnel) && right < maxPersonnelRows {
			p := d.Personnel[right]
			pdf.Text(107, rowY-0.5, fmt.Sprintf("%d", p.SN))
			pdf.Text(132, rowY-0.5, fitLine(pdf, p.Personnel, 45))
			pdf.Text(157, rowY-0.5, fitLine(pdf, p.No, 41))
		}
	}

	return y + h
}

func (g *Generator) drawUnsafeActs(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const h = 18.0
	const rowH = 5.5

	pdf.Rect(pageLeft, y, formWidth, h, "D")

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(12, y+3, "6. Unsafe Acts / Conditions Observed")

	headerY := y + 7
	pdf.Line(pageLeft, headerY, pageRight, headerY)
	pdf.Line(20, headerY, 20, y+h)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(12, headerY-1, "sn")
	pdf.Text(22, headerY-1, "Description of Unsafe Acts")

	pdf.SetFont("Helvetica", "", 7)
	for i := 0; i < maxUnsafeActRows; i++ {
		rowY := headerY + float64(i+1)*rowH
		pdf.Line(pageLeft, rowY, pageRight, rowY)
		if i < len(d.UnsafeActs) {
			act := d.UnsafeActs[i]
			pdf.Text(12, rowY-2, fmt.Sprintf("%d", act.SN))
			pdf.Text(22, rowY-2, fitLine(pdf, act.Description, 175))
		}
	}

	return y + h
}

// drawNotes renders the near-miss, obstruction and engineer's-note bands.
func (g *Generator) drawNotes(pdf *gofpdf.Fpdf, d diary.Diary, y float64) float64 {
	const nearMissH = 12.0
	pdf.Rect(pageLeft, y, formWidth, nearMissH, "D")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(12, y+nearMissH-8, "7. Near Miss/Accidents/Incidents:")
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+nearMissH-4, fitLine(pdf, d.NearMiss, 185))
	y += nearMissH

	const obstructionH = 12.0
	pdf.Rect(pageLeft, y, formWidth, obstructionH, "D")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(12, y+obstructionH-8, "8. Obstruction/Action Plans:")
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(12, y+obstructionH-4, fitLine(pdf, d.Obstruction, 185))
	y += obstructionH

	const noteH = 20.0
	pdf.Rect(pageLeft, y, formWidth, noteH, "D")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(12, y+noteH-16, "9. Engineer's Note:")
	pdf.SetFont("Helvetica", "", 7)
	noteY := y + noteH - 10
	for _, line := range fitLines(pdf, d.EngineersNote, 185, 3) {
		pdf.Text(12, noteY, line)
		noteY += 3
	}
	y += noteH

	return y
}

func (g *Generator) drawSignatures(pdf *gofpdf.Fpdf, d diary.Diary, y float64) {
	const h = 30.0
	colW := formWidth / 3

	pdf.Line(pageLeft+colW, y, pageLeft+colW, y+h)
	pdf.Line(pageLeft+2*colW, y, pageLeft+2*colW, y+h)

	titles := []string{"Prepared by", "Checked by", "Approved by"}
	roles := []string{"Construction Staff", "Consultant Supervision Staff", "Consultant Supervision Staff"}
	names := []string{d.PreparedBy, d.CheckedBy, d.ApprovedBy}

	for i := 0; i < 3; i++ {
		x := 12 + float64(i)*colW
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Text(x, y+5, titles[i])
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(x, y+9, roles[i])
		pdf.Text(x, y+15, fitLine(pdf, "Name: "+names[i], colW-4))
		pdf.Text(x, y+20, "Sign: ________________")
	}
}
