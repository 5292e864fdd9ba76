package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuel-girma/site-diary/constants"
)

func TestDecodeResponseEmbeddedJSON(t *testing.T) {
	text := "Here is the extracted data:\n```json\n{\"project\": \"Bulk Water Supply\", \"activities\": []}\n```\nLet me know if you need more."
	rec, err := DecodeResponse(text)
	require.NoError(t, err)
	assert.Equal(t, "Bulk Water Supply", rec["project"])
}

func TestDecodeResponseWholeJSON(t *testing.T) {
	rec, err := DecodeResponse(`{"project": "P", "time_morning": true}`)
	require.NoError(t, err)
	assert.Equal(t, "P", rec["project"])
	assert.Equal(t, true, rec["time_morning"])
}

func TestDecodeResponseSalvage(t *testing.T) {
	text := "Could not produce JSON.\nproject: Bulk Water Supply Project\ndate: 03-07-2024\n"
	rec, err := DecodeResponse(text)
	require.NoError(t, err)

	assert.Equal(t, "Bulk Water Supply Project", rec["project"])
	assert.Equal(t, "03-07-2024", rec["date"])
	assert.Equal(t, constants.DefaultWeather, rec["weather"])
	assert.Equal(t, false, rec["time_morning"])
	assert.Equal(t, []any{}, rec["activities"])

	// every field is present even when the text mentions none of them
	for _, f := range ScalarFields {
		_, ok := rec[f]
		assert.True(t, ok, "missing scalar %q", f)
	}
	for _, f := range ListFields {
		_, ok := rec[f]
		assert.True(t, ok, "missing list %q", f)
	}
}

func TestDecodeResponseEmpty(t *testing.T) {
	_, err := DecodeResponse("   ")
	assert.Error(t, err)
}

func TestDecodeResponseMalformedEmbeddedFallsThrough(t *testing.T) {
	// Braces present but not valid JSON; salvage still recovers the scalars.
	rec, err := DecodeResponse("{oops not json}\nproject: Road Upgrade")
	require.NoError(t, err)
	assert.Equal(t, "Road Upgrade", rec["project"])
}
