package render

import (
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 6)
	return pdf
}

func TestFitLineShortTextUnchanged(t *testing.T) {
	pdf := testPDF()
	assert.Equal(t, "short", fitLine(pdf, "short", 100))
	assert.Equal(t, "", fitLine(pdf, "", 100))
}

func TestFitLineTruncatesWithEllipsis(t *testing.T) {
	pdf := testPDF()
	long := strings.Repeat("excavation at the northern drainage channel ", 10)

	const maxWidth = 60.0
	got := fitLine(pdf, long, maxWidth)

	require.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(got), maxWidth)
	assert.Less(t, len(got), len(long))
}

func TestFitLinesWraps(t *testing.T) {
	pdf := testPDF()
	text := "first second third fourth fifth sixth seventh eighth ninth tenth"

	lines := fitLines(pdf, text, 25, 5)
	require.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 5)
	for _, l := range lines {
		assert.LessOrEqual(t, pdf.GetStringWidth(l), 25.0, "line %q overflows", l)
	}
}

func TestFitLinesTruncatesLastLine(t *testing.T) {
	pdf := testPDF()
	text := strings.Repeat("word ", 200)

	lines := fitLines(pdf, text, 30, 3)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[2], "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(lines[2]), 30.0)
}

func TestFitLinesEmpty(t *testing.T) {
	pdf := testPDF()
	assert.Empty(t, fitLines(pdf, "   ", 30, 3))
}
