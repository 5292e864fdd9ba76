package llm

import "context"

// RawRecord is the loosely-typed record shape decoded from a model response.
// Strict validation is deferred to the diary normalizer.
type RawRecord map[string]any

// ScalarFields lists every scalar key of the diary record, in schema order.
// The regex salvage tier and the schema builder share it.
var ScalarFields = []string{
	"project", "employer", "consultant", "contractor",
	"date", "location", "weather",
	"near_miss", "obstruction", "engineers_note",
	"prepared_by", "checked_by", "approved_by",
	"document_number", "page_number", "revision",
}

// ListFields lists every repeated-section key of the diary record.
var ListFields = []string{
	"activities", "equipment", "personnel", "materials", "unsafe_acts",
}

// RecordExtractor is the interface the pipeline depends on. Implementations
// return a nil RawRecord on any model or parse failure; the raw response
// bytes are returned for diagnostics whenever available.
type RecordExtractor interface {
	ExtractRecord(ctx context.Context, rawText string) (RawRecord, []byte, error)
}
