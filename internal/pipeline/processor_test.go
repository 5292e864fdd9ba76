package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuel-girma/site-diary/internal/common"
	"github.com/samuel-girma/site-diary/internal/diary"
	"github.com/samuel-girma/site-diary/internal/llm"
	"github.com/samuel-girma/site-diary/internal/ocr"
	"github.com/samuel-girma/site-diary/internal/render"
)

type stubRecords struct {
	rec   llm.RawRecord
	err   error
	calls int
}

func (s *stubRecords) ExtractRecord(_ context.Context, _ string) (llm.RawRecord, []byte, error) {
	s.calls++
	return s.rec, nil, s.err
}

func newTestProcessor(records llm.RecordExtractor) *Processor {
	return NewProcessor(
		ocr.NewExtractor(ocr.Config{}, nil),
		records,
		render.NewGenerator(render.LogoSet{}, nil),
		nil,
	)
}

func TestProcessDocumentRejectsNonPDF(t *testing.T) {
	p := newTestProcessor(&stubRecords{})

	_, err := p.ProcessDocument(context.Background(), []byte("PK\x03\x04 a zip, not a pdf"))
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNSUPPORTED_FORMAT", appErr.Code)
	assert.ErrorIs(t, err, common.ErrUnsupported)
}

func TestProcessDocumentDegradesOnUnreadablePDF(t *testing.T) {
	records := &stubRecords{}
	p := newTestProcessor(records)

	res, err := p.ProcessDocument(context.Background(), []byte("%PDF-1.4 truncated garbage"))
	require.NoError(t, err, "an unreadable document still yields an empty printable form")

	assert.Empty(t, res.RawText)
	assert.Zero(t, records.calls, "no model call without extracted text")
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF-")))
	assert.NotEmpty(t, res.Diagnostics)
	assert.Contains(t, res.Diagnostics[len(res.Diagnostics)-1], "validation: ")
	assert.Equal(t, diary.New().Weather, res.Record.Weather)
}

func TestProcessDocumentFullFlow(t *testing.T) {
	// Use a rendered diary form as the input document: it carries a real
	// text layer, so extraction stays on the text path and the model stage
	// is exercised.
	input := renderedSample(t)

	records := &stubRecords{rec: llm.RawRecord{
		"project": "Bulk Water Supply",
		"date":    "3/7/2024",
		"activities": []any{
			map[string]any{"sn": 1, "description": "loadingmaterial at north gate"},
		},
	}}
	p := newTestProcessor(records)

	res, err := p.ProcessDocument(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, records.calls)
	assert.NotEmpty(t, res.RawText)
	assert.Equal(t, "Bulk Water Supply", res.Record.Project)
	assert.Equal(t, "03-07-2024", res.Record.Date)
	require.Len(t, res.Record.Activities, 1)
	assert.Equal(t, "loading material at north gate", res.Record.Activities[0].Description)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF-")))
}

func TestProcessDocumentModelFailureDegrades(t *testing.T) {
	input := renderedSample(t)

	records := &stubRecords{err: errors.New("model unavailable")}
	p := newTestProcessor(records)

	res, err := p.ProcessDocument(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, records.calls)
	assert.Equal(t, diary.New().Weather, res.Record.Weather)

	found := false
	for _, d := range res.Diagnostics {
		if bytes.Contains([]byte(d), []byte("structured extraction unavailable")) {
			found = true
		}
	}
	assert.True(t, found, "model failure must surface as a diagnostic: %v", res.Diagnostics)
}

func renderedSample(t *testing.T) []byte {
	t.Helper()
	d := diary.New()
	d.Project = "Bulk Water Supply Project"
	d.Date = "03-07-2024"
	d.Activities = []diary.Activity{{SN: 1, Description: "Excavation at chainage 4+200"}}
	d.EngineersNote = "Work progressing per schedule with no major delays reported"

	out, err := render.NewGenerator(render.LogoSet{}, nil).Render(d)
	require.NoError(t, err)
	return out
}
