package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/samuel-girma/site-diary/constants"
)

// The model's output is not guaranteed to be pure JSON: it may wrap the
// object in prose, markdown fences, or nothing at all. DecodeResponse runs
// an ordered chain of parse strategies and returns the first success. Each
// tier is pure and independently testable.

var reJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

// DecodeResponse parses a raw model response into a RawRecord. The chain:
// first balanced JSON object in the text, then the whole text as JSON, then
// regex key-value salvage of the scalar fields. Only total failure of all
// three tiers returns an error.
func DecodeResponse(text string) (RawRecord, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	if rec, err := decodeEmbeddedJSON(cleaned); err == nil {
		return rec, nil
	}
	if rec, err := decodeWholeJSON(cleaned); err == nil {
		return rec, nil
	}
	return salvageKeyValues(cleaned), nil
}

// decodeEmbeddedJSON parses the greedy match between the first '{' and the
// last '}' in the text.
func decodeEmbeddedJSON(text string) (RawRecord, error) {
	match := reJSONObject.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found")
	}
	var rec RawRecord
	if err := json.Unmarshal([]byte(match), &rec); err != nil {
		return nil, fmt.Errorf("decode embedded json: %w", err)
	}
	return rec, nil
}

// decodeWholeJSON parses the entire response as a single JSON document.
func decodeWholeJSON(text string) (RawRecord, error) {
	var rec RawRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return nil, fmt.Errorf("decode response json: %w", err)
	}
	return rec, nil
}

// salvageKeyValues recovers what it can from a non-JSON response: for each
// scalar field it takes the first case-insensitive "<field>: value" match;
// list fields default to empty, booleans to false.
func salvageKeyValues(text string) RawRecord {
	rec := RawRecord{
		"time_morning":   false,
		"time_afternoon": false,
	}
	for _, field := range ScalarFields {
		rec[field] = ""
	}
	for _, field := range ListFields {
		rec[field] = []any{}
	}
	rec["weather"] = constants.DefaultWeather

	for _, field := range ScalarFields {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(field) + `[:\s]*(.+)`)
		if m := pattern.FindStringSubmatch(text); m != nil {
			rec[field] = strings.TrimSpace(m[1])
		}
	}
	return rec
}
