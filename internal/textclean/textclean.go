// Package textclean carries the text cleanup shared by OCR post-processing
// and record normalization. Both stages can introduce the same defects
// (merged words, stray quoting), so they share one repair vocabulary.
package textclean

import (
	"regexp"
	"strings"
)

// Repair is one regex-based substitution applied during cleanup. The table
// is ordered; earlier repairs run first.
type Repair struct {
	Pattern     *regexp.Regexp
	Replacement string
}

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reWrapping   = regexp.MustCompile(`^["'\s]+|["'\s]+$`)
	reLowerUpper = regexp.MustCompile(`([a-z])([A-Z])`)
	reLetterNum  = regexp.MustCompile(`([a-zA-Z])([0-9])`)
	reNumLetter  = regexp.MustCompile(`([0-9])([a-zA-Z])`)
)

// mergedWordRepairs is the curated construction-vocabulary repair table for
// words the OCR or the extraction model tends to run together. The list is
// heuristic, not exhaustive; extend it with AppendRepairs.
var mergedWordRepairs = []Repair{
	{regexp.MustCompile(`(?i)loading([a-z])`), "loading $1"},
	{regexp.MustCompile(`(?i)material([a-z])`), "material $1"},
	{regexp.MustCompile(`(?i)concrete([a-z])`), "concrete $1"},
	{regexp.MustCompile(`(?i)steel([a-z])`), "steel $1"},
	{regexp.MustCompile(`(?i)excavation([a-z])`), "excavation $1"},
	{regexp.MustCompile(`(?i)construction([a-z])`), "construction $1"},
	{regexp.MustCompile(`(?i)equipment([a-z])`), "equipment $1"},
	{regexp.MustCompile(`(?i)([a-z])work\b`), "$1 work"},
	{regexp.MustCompile(`(?i)([a-z])site\b`), "$1 site"},
	{regexp.MustCompile(`(?i)([a-z])area\b`), "$1 area"},
	{regexp.MustCompile(`(?i)([a-z])operation\b`), "$1 operation"},
	{regexp.MustCompile(`(?i)([a-z])pipe\b`), "$1 pipe"},
	{regexp.MustCompile(`(?i)([a-z])road\b`), "$1 road"},
	{regexp.MustCompile(`(?i)([a-z])bridge\b`), "$1 bridge"},
}

// AppendRepairs extends the merged-word repair table for the lifetime of the
// process. Callers own pattern compilation.
func AppendRepairs(repairs ...Repair) {
	mergedWordRepairs = append(mergedWordRepairs, repairs...)
}

func applyMergedWordRepairs(s string) string {
	for _, r := range mergedWordRepairs {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return s
}

// Clean normalizes a single free-text field: collapses whitespace, strips
// wrapping quote artifacts, splits words merged at a lower→Upper boundary,
// and applies the merged-word repair table. A literal "null" becomes "".
func Clean(s string) string {
	if s == "" || s == "null" {
		return ""
	}
	cleaned := reSpaces.ReplaceAllString(s, " ")
	cleaned = reWrapping.ReplaceAllString(cleaned, "")
	cleaned = reLowerUpper.ReplaceAllString(cleaned, "$1 $2")
	cleaned = applyMergedWordRepairs(cleaned)
	cleaned = reSpaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// RepairOCR post-processes a whole extracted document: collapses intra-line
// whitespace, keeps single blank lines as paragraph separators, then fixes
// the two known OCR failure classes (merged words at case boundaries,
// missing space between letters and digits) plus the merged-word table.
func RepairOCR(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.Join(strings.Fields(line), " ")
		if l != "" {
			cleaned = append(cleaned, l)
		} else if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
			// preserve paragraph breaks, but never stack blanks
			cleaned = append(cleaned, "")
		}
	}

	out := strings.Join(cleaned, "\n")
	out = reLowerUpper.ReplaceAllString(out, "$1 $2")
	out = reLetterNum.ReplaceAllString(out, "$1 $2")
	out = reNumLetter.ReplaceAllString(out, "$1 $2")
	out = applyMergedWordRepairs(out)
	return out
}
