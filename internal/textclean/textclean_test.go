package textclean

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMergedWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"loadingmaterial", "loading material"},
		{"Loadingmaterial at north gate", "loading material at north gate"},
		{"concretework", "concrete work"},
		{"steelfixing", "steel fixing"},
		{"accesssite", "access site"},
		{"excavationarea", "excavation area"},
		{"laying ofpipe", "laying of pipe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "input %q", tt.in)
	}
}

func TestCleanWhitespaceAndWrapping(t *testing.T) {
	assert.Equal(t, "excavation at chainage 4+200", Clean(`  "excavation   at chainage 4+200" `))
	assert.Equal(t, "Site Inspection", Clean("'Site Inspection'"))
	assert.Equal(t, "", Clean("null"))
	assert.Equal(t, "", Clean(""))
}

func TestCleanCaseBoundary(t *testing.T) {
	assert.Equal(t, "Pipe Laying", Clean("PipeLaying"))
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"loadingmaterial",
		`"  concretework on  BridgeDeck "`,
		"normal sentence with spacing",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestRepairOCR(t *testing.T) {
	in := "Excavation  at   chainage4+200\n\n\n\nconcretework ongoing\nCrew of12people"
	got := RepairOCR(in)

	assert.Contains(t, got, "chainage 4")
	assert.Contains(t, got, "concrete work")
	assert.Contains(t, got, "of 12 people")
	assert.NotContains(t, got, "\n\n\n")
}

func TestRepairOCRPreservesParagraphBreaks(t *testing.T) {
	got := RepairOCR("first paragraph\n\nsecond paragraph")
	assert.Equal(t, "first paragraph\n\nsecond paragraph", got)
}

func TestAppendRepairs(t *testing.T) {
	AppendRepairs(Repair{Pattern: regexp.MustCompile(`(?i)asphalt([a-z])`), Replacement: "asphalt $1"})
	assert.Equal(t, "asphalt paving", Clean("asphaltpaving"))
}
