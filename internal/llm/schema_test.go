package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := BuildDiaryJSONSchema()

	good := []byte(`{
		"project": "Bulk Water Supply",
		"time_morning": true,
		"activities": [{"sn": 1, "description": "excavation"}]
	}`)
	assert.NoError(t, ValidateJSONAgainstSchema(schema, good))

	badType := []byte(`{"time_morning": "yes"}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, badType))

	badSN := []byte(`{"activities": [{"sn": 0, "description": "x"}]}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, badSN))
}
