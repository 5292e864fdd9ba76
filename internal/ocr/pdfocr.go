package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// altPSMs are tried in order when the primary segmentation mode yields
// almost nothing; the pass with the highest yield wins.
var altPSMs = []string{"4", "7", "8", "12"}

const primaryPSM = "6"

// baseDPI * Scale gives the rasterization resolution; at the default
// Scale of 3 this is 216 DPI.
const baseDPI = 72

// extractWithOCR rasterizes the PDF and runs tesseract on each page image.
// All intermediate files live in a per-call temp directory released on every
// exit path.
func (e *Extractor) extractWithOCR(ctx context.Context, data []byte) (string, int, []string) {
	var warnings []string

	pages, err := pageCount(data)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr: pdf validation: %v", err))
		return "", 0, warnings
	}
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		warnings = append(warnings, fmt.Sprintf("ocr: clipped to first %d of %d pages", e.cfg.MaxPages, pages))
	}

	dir, err := os.MkdirTemp("", "sitediary-ocr-*")
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr: temp dir: %v", err))
		return "", pages, warnings
	}
	defer os.RemoveAll(dir)

	images, rasterWarns := e.rasterize(ctx, dir, data)
	warnings = append(warnings, rasterWarns...)
	if len(images) == 0 {
		return "", pages, warnings
	}

	var out strings.Builder
	for i, img := range images {
		text, err := e.recognize(ctx, dir, img)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ocr: page %d: %v", i+1, err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			fmt.Fprintf(&out, "--- Page %d (OCR) ---\n%s\n", i+1, text)
		}
	}
	return out.String(), pages, warnings
}

// pageCount validates the PDF in relaxed mode and returns its page count.
func pageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("read context: %w", err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return pdfCtx.PageCount, nil
}

// rasterize writes the PDF to disk and converts it to per-page PNGs with
// pdftoppm. Returns the sorted list of image paths.
func (e *Extractor) rasterize(ctx context.Context, dir string, data []byte) ([]string, []string) {
	var warnings []string

	src := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr: write input: %v", err))
		return nil, warnings
	}

	args := []string{
		"-png",
		"-r", strconv.Itoa(baseDPI * e.cfg.Scale),
	}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, src, filepath.Join(dir, "page"))

	if _, stderr, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...); err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr: pdftoppm: %v: %s", err, truncate(string(stderr), 512)))
		return nil, warnings
	}

	images, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil || len(images) == 0 {
		warnings = append(warnings, "ocr: pdftoppm produced no images")
		return nil, warnings
	}
	sort.Strings(images)

	for _, img := range images {
		if err := preprocessImage(img); err != nil {
			warnings = append(warnings, fmt.Sprintf("ocr: preprocess %s: %v", filepath.Base(img), err))
		}
	}
	return images, warnings
}

// recognize runs tesseract on one page image, retrying with alternative
// segmentation modes when the primary pass yields almost nothing, and keeps
// the highest-yield result.
func (e *Extractor) recognize(ctx context.Context, dir, image string) (string, error) {
	best, err := e.tesseract(ctx, dir, image, primaryPSM)
	if err != nil {
		return "", err
	}
	if yield(best) >= MinOCRYield {
		return best, nil
	}

	for _, psm := range altPSMs {
		alt, err := e.tesseract(ctx, dir, image, psm)
		if err != nil {
			continue
		}
		if yield(alt) > yield(best) {
			best = alt
		}
		if yield(best) >= MinOCRYield {
			break
		}
	}
	return best, nil
}

func (e *Extractor) tesseract(ctx context.Context, dir, image, psm string) (string, error) {
	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(image), ".png")+"-psm"+psm)

	args := []string{
		image, out,
		"-l", e.cfg.Languages,
		"--oem", "3",
		"--psm", psm,
		"-c", "tessedit_char_whitelist=" + e.cfg.CharWhitelist,
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	if _, stderr, err := e.runner.Run(ctx, e.cfg.Tesseract, args...); err != nil {
		return "", fmt.Errorf("tesseract psm %s: %v: %s", psm, err, truncate(string(stderr), 512))
	}

	text, err := os.ReadFile(out + ".txt")
	if err != nil {
		return "", fmt.Errorf("tesseract output: %w", err)
	}
	return string(text), nil
}

func yield(s string) int {
	return len(strings.TrimSpace(s))
}
