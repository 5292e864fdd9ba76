// Command diaryconv converts a construction site-report PDF into a filled
// Daily Diary form.
//
// Usage:
//
//	diaryconv <input.pdf> <output.pdf> [output.xlsx]
//
// Configuration comes from the environment: GEMINI_API_KEY (required),
// GEMINI_MODEL, OCR binary paths, logo paths. Diagnostics accumulated
// during a degraded run are printed to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samuel-girma/site-diary/internal/common"
	"github.com/samuel-girma/site-diary/internal/export"
	"github.com/samuel-girma/site-diary/internal/llm/gemini"
	"github.com/samuel-girma/site-diary/internal/ocr"
	"github.com/samuel-girma/site-diary/internal/pipeline"
	"github.com/samuel-girma/site-diary/internal/render"
)

func main() {
	jsonLog := flag.Bool("json-log", false, "emit JSON logs instead of text")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall processing timeout")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	if *jsonLog {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: diaryconv <input.pdf> <output.pdf> [output.xlsx]")
		os.Exit(2)
	}
	inPath, outPath := args[0], args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		logger.Error("read input", "path", inPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Languages:   cfg.OCR.Languages,
		Scale:       cfg.OCR.Scale,
		MaxPages:    cfg.OCR.MaxPages,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)

	records := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	logos := render.DefaultLogoSet()
	if p := cfg.Form.NicholasLogoPath; p != "" {
		logos.NicholasPaths = append([]string{p}, logos.NicholasPaths...)
	}
	if p := cfg.Form.MSLogoPath; p != "" {
		logos.MSPaths = append([]string{p}, logos.MSPaths...)
	}
	renderer := render.NewGenerator(logos, logger)

	proc := pipeline.NewProcessor(extractor, records, renderer, logger)

	res, err := proc.ProcessDocument(ctx, data)
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, "diagnostic:", d)
	}
	if err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, res.PDF, 0o644); err != nil {
		logger.Error("write output pdf", "path", outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("wrote diary form", "path", outPath, "bytes", len(res.PDF))

	if len(args) == 3 {
		xlsx, err := export.NewService(logger).ExportDiaryXLSX(res.Record)
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(args[2], xlsx, 0o644); err != nil {
			logger.Error("write output xlsx", "path", args[2], "error", err)
			os.Exit(1)
		}
		logger.Info("wrote diary workbook", "path", args[2], "bytes", len(xlsx))
	}
}
