// Package ocr turns a site-report PDF into normalized plain text. It tries
// the embedded text layer first and falls back to rasterized OCR when the
// document is scanned or the text layer is too thin to be real content.
package ocr

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samuel-girma/site-diary/internal/textclean"
)

const (
	// MinTextContent is the threshold under which a text-layer extraction
	// is considered empty and OCR takes over.
	MinTextContent = 50

	// MinOCRYield is the threshold under which the primary OCR pass is
	// retried with alternative page-segmentation modes.
	MinOCRYield = 20
)

// DefaultCharWhitelist constrains tesseract to characters that actually
// occur in site reports, including accented Latin ranges.
const DefaultCharWhitelist = `ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,!?@#$%^&*()_+-=[]{}|;:'"<>/?` + "`~" +
	`àáâãäåæçèéêëìíîïðñòóôõöøùúûüýþÿĀāĂăĄąĆćĈĉĊċČčĎďĐđĒēĔĕĖėĘęĚěĜĝĞğĠġĢģĤĥĦħĨĩĪīĬĭĮįİıĲĳĴĵĶķĸĹĺĻļĽľĿŀŁłŃńŅņŇňŉŊŋŌōŎŏŐőŒœŔŕŖŗŘřŚśŜŝŞşŠšŢţŤťŦŧŨũŪūŬŭŮůŰűŲųŴŵŶŷŸŹźŻżŽž`

// DefaultLanguages is the multilingual tesseract language stack. Whether
// every language is exercised by real inputs is unverified; the capability
// stays configurable.
const DefaultLanguages = "eng+fra+deu+spa+ita+por+ara+chi_sim+chi_tra+jpn+kor"

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Languages     string // default DefaultLanguages
	CharWhitelist string // default DefaultCharWhitelist
	Scale         int    // rasterization scale factor, default 3 (216 DPI)
	MaxPages      int    // 0 = no limit

	TessdataDir string
}

// Result is what extraction hands the rest of the pipeline. Text is empty
// on total failure, which callers must treat as "requires manual
// intervention", never as a fatal error.
type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = DefaultLanguages
	}
	if cfg.CharWhitelist == "" {
		cfg.CharWhitelist = DefaultCharWhitelist
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract produces normalized plain text from in-memory PDF bytes. It never
// returns an error for malformed input: failures degrade to an empty Text
// with the causes collected in Warnings.
func (e *Extractor) Extract(ctx context.Context, data []byte) Result {
	start := time.Now()
	res := Result{Method: "pdf-text"}

	text, pages, warns := e.extractTextLayer(data)
	res.Pages = pages
	res.Warnings = append(res.Warnings, warns...)

	if len(strings.TrimSpace(text)) < MinTextContent {
		e.logger.Info("ocr.extract.fallback",
			"text_len", len(strings.TrimSpace(text)), "threshold", MinTextContent)
		ocrText, ocrPages, ocrWarns := e.extractWithOCR(ctx, data)
		res.Warnings = append(res.Warnings, ocrWarns...)
		if ocrPages > 0 {
			res.Pages = ocrPages
		}
		text = ocrText
		res.Method = "pdf-ocr"
	}

	res.Text = textclean.RepairOCR(text)
	res.Duration = time.Since(start)

	e.logger.Info("ocr.extract.ok",
		"method", res.Method,
		"pages", res.Pages,
		"text_len", len(res.Text),
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res
}
