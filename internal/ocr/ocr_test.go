package ocr

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner emulates pdftoppm and tesseract by writing the files the real
// binaries would produce.
type fakeRunner struct {
	pages      int
	textForPSM map[string]string
	calls      []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))

	if strings.Contains(name, "pdftoppm") {
		prefix := args[len(args)-1]
		for i := 1; i <= f.pages; i++ {
			if err := writeTestPNG(fmt.Sprintf("%s-%d.png", prefix, i)); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}

	if strings.Contains(name, "tesseract") {
		psm := ""
		for i, a := range args {
			if a == "--psm" && i+1 < len(args) {
				psm = args[i+1]
			}
		}
		text := f.textForPSM[psm]
		if err := os.WriteFile(args[1]+".txt", []byte(text), 0o600); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	return nil, nil, fmt.Errorf("unexpected command %q", name)
}

func writeTestPNG(path string) error {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(255)
			if x > 5 && x < 15 && y > 5 && y < 15 {
				v = 10
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func TestRecognizeRetriesSegmentationModes(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "page-1.png")
	require.NoError(t, writeTestPNG(img))

	runner := &fakeRunner{textForPSM: map[string]string{
		"6": "short",
		"4": "a much longer recognized text that clears the retry threshold",
	}}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	text, err := e.recognize(context.Background(), dir, img)
	require.NoError(t, err)
	assert.Contains(t, text, "much longer recognized text")
}

func TestRecognizeKeepsPrimaryWhenSufficient(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "page-1.png")
	require.NoError(t, writeTestPNG(img))

	runner := &fakeRunner{textForPSM: map[string]string{
		"6": "primary segmentation output long enough to keep",
	}}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	text, err := e.recognize(context.Background(), dir, img)
	require.NoError(t, err)
	assert.Contains(t, text, "primary segmentation")
	require.Len(t, runner.calls, 1, "no retries expected when the primary yield is sufficient")
}

func TestTesseractArgs(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "page-1.png")
	require.NoError(t, writeTestPNG(img))

	runner := &fakeRunner{textForPSM: map[string]string{"6": "ok"}}
	e := NewExtractor(Config{TessdataDir: "/opt/tessdata"}, nil)
	e.runner = runner

	_, err := e.tesseract(context.Background(), dir, img, "6")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Contains(t, call, "--oem 3")
	assert.Contains(t, call, "--psm 6")
	assert.Contains(t, call, "-l "+DefaultLanguages)
	assert.Contains(t, call, "tessedit_char_whitelist=")
	assert.Contains(t, call, "--tessdata-dir /opt/tessdata")
}

func TestExtractGarbageInputDegrades(t *testing.T) {
	runner := &fakeRunner{}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	res := e.Extract(context.Background(), []byte("this is not a pdf at all"))

	assert.Empty(t, res.Text)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.NotEmpty(t, res.Warnings, "unreadable input must surface warnings, not errors")
	assert.Empty(t, runner.calls, "no external tools should run when the document cannot be opened")
}

func TestConfigDefaults(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	assert.Equal(t, "pdftoppm", e.cfg.Pdftoppm)
	assert.Equal(t, "tesseract", e.cfg.Tesseract)
	assert.Equal(t, DefaultLanguages, e.cfg.Languages)
	assert.Equal(t, 3, e.cfg.Scale)
}

func TestPreprocessImageBinarizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, writeTestPNG(path))
	require.NoError(t, preprocessImage(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			assert.Contains(t, []uint8{0, 255}, c.Y, "pixel (%d,%d) not binarized", x, y)
		}
	}
}
