package ocr

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractTextLayer reads the embedded text layer page by page. A panic or
// error on one page is isolated to that page; remaining pages still
// contribute. Returns the concatenated text with page markers, the page
// count, and per-page warnings.
func (e *Extractor) extractTextLayer(data []byte) (string, int, []string) {
	var warnings []string

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("text layer: open failed: %v", err))
		return "", 0, warnings
	}

	total := reader.NumPage()
	pages := total
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		warnings = append(warnings, fmt.Sprintf("text layer: clipped to first %d of %d pages", e.cfg.MaxPages, total))
		pages = e.cfg.MaxPages
	}

	var out strings.Builder
	for i := 1; i <= pages; i++ {
		text, tables, err := readPage(reader, i)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("text layer: page %d: %v", i, err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			fmt.Fprintf(&out, "--- Page %d ---\n%s\n", i, text)
		}
		for m, tbl := range tables {
			fmt.Fprintf(&out, "--- Table %d on Page %d ---\n%s\n", m+1, i, tbl)
		}
	}
	return out.String(), total, warnings
}

// readPage extracts plain text and tabular regions from a single page,
// converting parser panics into errors.
func readPage(reader *pdf.Reader, n int) (text string, tables []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return "", nil, fmt.Errorf("null page")
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", nil, err
	}

	tables = detectTables(page.Content().Text)
	return text, tables, nil
}

// detectTables groups positioned text fragments into rows by Y coordinate
// and treats consecutive rows with two or more distinct column positions as
// a table. Each table is serialized pipe-delimited, one row per line.
func detectTables(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	// Rows: fragments whose Y is within half a line height of each other.
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // PDF Y grows upward
		}
		return sorted[i].X < sorted[j].X
	})

	const yTolerance = 3.0
	var rows [][]pdf.Text
	for _, t := range sorted {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if len(rows) > 0 && abs(rows[len(rows)-1][0].Y-t.Y) <= yTolerance {
			rows[len(rows)-1] = append(rows[len(rows)-1], t)
			continue
		}
		rows = append(rows, []pdf.Text{t})
	}

	// Cells: merge fragments separated by less than a glyph width; a gap
	// wider than that starts a new column.
	const xGap = 6.0
	var tables []string
	var current []string
	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, strings.Join(current, "\n"))
		}
		current = nil
	}
	for _, row := range rows {
		cells := rowCells(row, xGap)
		if len(cells) >= 2 {
			current = append(current, strings.Join(cells, " | "))
			continue
		}
		flush()
	}
	flush()
	return tables
}

func rowCells(row []pdf.Text, xGap float64) []string {
	var cells []string
	var cell strings.Builder
	prevEnd := 0.0
	for i, t := range row {
		if i > 0 && t.X-prevEnd > xGap {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if s := strings.TrimSpace(cell.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
