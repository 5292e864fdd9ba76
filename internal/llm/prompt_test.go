package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExtractionPrompt(t *testing.T) {
	raw := "Daily report 03-07-2024: excavation at chainage 4+200"
	prompt := BuildExtractionPrompt(raw)

	assert.Contains(t, prompt, raw)
	assert.Contains(t, prompt, "DD-MM-YYYY")
	assert.Contains(t, prompt, "loadingmaterial") // word-spacing rule example
	assert.Contains(t, prompt, "RESPOND WITH JSON ONLY")

	// every record field is named in the embedded shape
	for _, f := range ScalarFields {
		assert.Contains(t, prompt, `"`+f+`"`, "shape missing %q", f)
	}
	for _, f := range ListFields {
		assert.Contains(t, prompt, `"`+f+`"`, "shape missing %q", f)
	}
}

func TestRecordShapeIsValidJSON(t *testing.T) {
	var shape map[string]any
	require.NoError(t, json.Unmarshal([]byte(recordShape), &shape))
	assert.Len(t, shape, len(ScalarFields)+len(ListFields)+2) // + the two shift booleans
}

func TestPromptRulesAreNumbered(t *testing.T) {
	prompt := BuildExtractionPrompt("x")
	for _, rule := range []string{"1.", "5.", "10."} {
		assert.True(t, strings.Contains(prompt, "\n"+rule) || strings.HasPrefix(prompt, rule),
			"missing rule %s", rule)
	}
}
