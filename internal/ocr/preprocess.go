package ocr

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// preprocessImage rewrites a page image in place after grayscale
// conversion, light denoising, adaptive thresholding and a morphological
// close. Scanned site reports are frequently low-contrast photocopies;
// binarizing against a local mean keeps faint handwriting legible to
// tesseract.
func preprocessImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	gray := toGray(src)
	gray = boxBlur(gray)
	gray = adaptiveThreshold(gray, 11, 2)
	gray = morphClose(gray)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, gray); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

// boxBlur applies a 3x3 mean filter.
func boxBlur(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sum, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					sum += int(src.GrayAt(px, py).Y)
					n++
				}
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(sum / n)})
		}
	}
	return dst
}

// adaptiveThreshold binarizes each pixel against the mean of its
// window x window neighborhood minus offset.
func adaptiveThreshold(src *image.Gray, window, offset int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	half := window / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sum, n int
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					sum += int(src.GrayAt(px, py).Y)
					n++
				}
			}
			v := 0
			if int(src.GrayAt(x, y).Y) > sum/n-offset {
				v = 255
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return dst
}

// morphClose runs a 3x3 dilation followed by a 3x3 erosion on a binarized
// image, closing single-pixel breaks inside glyph strokes.
func morphClose(src *image.Gray) *image.Gray {
	return erode(dilate(src))
}

func dilate(src *image.Gray) *image.Gray {
	return morph(src, func(min, max int) int { return min })
}

func erode(src *image.Gray) *image.Gray {
	return morph(src, func(min, max int) int { return max })
}

// morph applies a 3x3 structuring element. Ink is black (0), so dilation
// takes the neighborhood minimum and erosion the maximum.
func morph(src *image.Gray, pick func(min, max int) int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			lo, hi := 255, 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					px, py := x+dx, y+dy
					if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
						continue
					}
					v := int(src.GrayAt(px, py).Y)
					if v < lo {
						lo = v
					}
					if v > hi {
						hi = v
					}
				}
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(pick(lo, hi))})
		}
	}
	return dst
}
