package render

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// LogoSet locates the two letterhead logos. Explicit bytes win; otherwise
// the candidate paths are probed in order; with neither, the header falls
// back to a bold text placeholder.
type LogoSet struct {
	NicholasBytes []byte
	MSBytes       []byte

	NicholasPaths []string
	MSPaths       []string
}

// DefaultLogoSet probes the asset locations the deployed form used.
func DefaultLogoSet() LogoSet {
	return LogoSet{
		NicholasPaths: []string{
			"attached_assets/download_1750012790494.png",
			"attached_assets/nicholas_odwyer_logo.png",
			"attached_assets/nicholas_logo.png",
		},
		MSPaths: []string{
			"attached_assets/MS-LOGO-with-text-cut-out_1750012778072.png",
			"attached_assets/ms_consultancy_logo.png",
			"attached_assets/ms_logo.png",
		},
	}
}

func resolveLogo(explicit []byte, paths []string) []byte {
	if len(explicit) > 0 {
		return explicit
	}
	for _, p := range paths {
		if data, err := os.ReadFile(p); err == nil {
			return data
		}
	}
	return nil
}

// drawLogo registers in-memory image bytes under name and places them at
// x,y scaled to w x h. Returns false when the bytes are absent or not
// decodable, letting the caller draw the text placeholder. Names only need
// to be unique within one document.
func drawLogo(pdf *gofpdf.Fpdf, name string, data []byte, x, y, w, h float64) bool {
	if len(data) == 0 {
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if info == nil || pdf.Err() {
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	return true
}
