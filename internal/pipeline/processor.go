// Package pipeline chains extraction, structuring, normalization and
// rendering into the single document-to-diary conversion flow.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/samuel-girma/site-diary/internal/common"
	"github.com/samuel-girma/site-diary/internal/diary"
	"github.com/samuel-girma/site-diary/internal/llm"
	"github.com/samuel-girma/site-diary/internal/ocr"
	"github.com/samuel-girma/site-diary/internal/render"
)

var pdfMagic = []byte("%PDF-")

// Processor wires the pipeline stages. Every stage before rendering
// degrades with a diagnostic instead of failing the run; rendering is the
// only stage whose error aborts processing.
type Processor struct {
	Extractor *ocr.Extractor
	Records   llm.RecordExtractor
	Renderer  *render.Generator
	Logger    *slog.Logger
}

// Result carries everything a caller needs from one conversion: the raw
// extracted text for operator review, the structured record, the rendered
// form, and every degradation the run accumulated.
type Result struct {
	RawText     string
	Record      diary.Diary
	PDF         []byte
	Diagnostics []string
}

func NewProcessor(extractor *ocr.Extractor, records llm.RecordExtractor, renderer *render.Generator, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Extractor: extractor,
		Records:   records,
		Renderer:  renderer,
		Logger:    logger,
	}
}

// ProcessDocument converts one uploaded site-report PDF into a filled
// Daily Diary form. An unreadable document still yields an empty printable
// form plus diagnostics; only input that is not a PDF at all, or a drawing
// failure, returns an error.
func (p *Processor) ProcessDocument(ctx context.Context, data []byte) (Result, error) {
	runID := uuid.New().String()
	start := time.Now()
	res := Result{Record: diary.New()}

	if !bytes.HasPrefix(data, pdfMagic) {
		return res, common.NewAppError("UNSUPPORTED_FORMAT", "input is not a PDF document", common.ErrUnsupported)
	}

	p.Logger.Info("pipeline.start", "run_id", runID, "input_bytes", len(data))

	extracted := p.Extractor.Extract(ctx, data)
	res.RawText = extracted.Text
	res.Diagnostics = append(res.Diagnostics, extracted.Warnings...)

	if len(res.RawText) == 0 {
		res.Diagnostics = append(res.Diagnostics,
			"no text could be extracted from the document; manual entry required")
	} else {
		rec, _, err := p.Records.ExtractRecord(ctx, res.RawText)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("structured extraction unavailable: %v", err))
			p.Logger.Warn("pipeline.extract_record_failed", "run_id", runID, "error", err)
		} else {
			res.Record = diary.Normalize(rec)
		}
	}

	if errs := res.Record.Validate(); len(errs) > 0 {
		for _, e := range errs {
			res.Diagnostics = append(res.Diagnostics, "validation: "+e)
		}
	}

	pdfBytes, err := p.Renderer.Render(res.Record)
	if err != nil {
		p.Logger.Error("pipeline.render_failed", "run_id", runID, "error", err)
		return res, common.NewAppError("RENDER_ERROR", "generate diary form", err)
	}
	res.PDF = pdfBytes

	p.Logger.Info("pipeline.ok",
		"run_id", runID,
		"method", extracted.Method,
		"pages", extracted.Pages,
		"text_len", len(res.RawText),
		"diagnostics", len(res.Diagnostics),
		"output_bytes", len(res.PDF),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
