package render

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// fitLine returns text shortened so that it fits within maxWidth at the
// current font, appending "..." when anything had to be cut.
func fitLine(pdf *gofpdf.Fpdf, text string, maxWidth float64) string {
	if text == "" {
		return ""
	}
	if pdf.GetStringWidth(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > maxWidth {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return ""
	}
	return string(runes) + "..."
}

// fitLines greedily word-wraps text into at most maxLines lines of maxWidth,
// truncating the final line with an ellipsis when content remains.
func fitLines(pdf *gofpdf.Fpdf, text string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line string
	for i, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if pdf.GetStringWidth(candidate) <= maxWidth || line == "" {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
		if len(lines) == maxLines-1 {
			// Last line takes everything left and gets truncated.
			rest := strings.Join(words[i:], " ")
			return append(lines, fitLine(pdf, rest, maxWidth))
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
