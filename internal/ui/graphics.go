package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/qeesung/image2ascii/convert"
)

// TerminalCapabilities represents what the terminal can show in previews.
type TerminalCapabilities struct {
	SupportsColor bool
}

// DetectTerminalCapabilities inspects the environment.
func DetectTerminalCapabilities() TerminalCapabilities {
	term := os.Getenv("TERM")
	_, noColor := os.LookupEnv("NO_COLOR")
	return TerminalCapabilities{
		SupportsColor: !noColor && term != "dumb",
	}
}

// DecodeImage decodes PNG, JPEG or GIF bytes.
func DecodeImage(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// RenderPreview renders image bytes as ASCII art, or "" if they do not decode.
func RenderPreview(data []byte, caps TerminalCapabilities, targetWidth, targetHeight int) string {
	if len(data) == 0 || targetWidth <= 0 || targetHeight <= 0 {
		return ""
	}
	img, _, err := DecodeImage(data)
	if err != nil {
		return ""
	}
	return convertToASCII(img, caps.SupportsColor, targetWidth, targetHeight)
}

// convertToASCII converts an image to (optionally coloured) ASCII art.
func convertToASCII(img image.Image, colored bool, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = colored
	opts.Ratio = 0.5 // terminal cells are twice as tall as wide

	return strings.TrimRight(converter.Image2ASCIIString(img, &opts), "\n")
}

var (
	sampleLeafOnce sync.Once
	sampleLeaf     []byte
)

// SampleLeafPNG returns a generated picture of a leaf with blight spots, used
// when no photo is at hand.
func SampleLeafPNG() []byte {
	sampleLeafOnce.Do(func() {
		sampleLeaf = drawSampleLeaf(96, 64)
	})
	return sampleLeaf
}

func drawSampleLeaf(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 235, G: 228, B: 205, A: 255}}, image.Point{}, draw.Src)

	leaf := color.RGBA{R: 62, G: 142, B: 65, A: 255}
	vein := color.RGBA{R: 170, G: 210, B: 120, A: 255}
	spot := color.RGBA{R: 110, G: 75, B: 40, A: 255}

	cx, cy := float64(w)/2, float64(h)/2
	rx, ry := float64(w)*0.42, float64(h)*0.36
	spots := [][3]float64{{0.35, 0.40, 4}, {0.60, 0.55, 5}, {0.48, 0.30, 3}, {0.68, 0.38, 3}}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			c := leaf
			if math.Abs(float64(y)-cy) < 1 {
				c = vein
			}
			for _, s := range spots {
				sx, sy := s[0]*float64(w), s[1]*float64(h)
				if math.Hypot(float64(x)-sx, float64(y)-sy) < s[2] {
					c = spot
				}
			}
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
