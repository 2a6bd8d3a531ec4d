package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// DefaultFont is the glyph renderer used when none is configured.
const DefaultFont = "gomono"

// alphaThreshold is the coverage above which an anti-aliased pixel counts
// as ink (25%).
const alphaThreshold = 64

// ErrUnknownFont is returned by NewGlyphRenderer for names it cannot
// resolve to a built-in face or a TrueType file.
var ErrUnknownFont = errors.New("unknown font")

// GlyphBitmap is a square monochrome raster of a single symbol.
// A set bit is an ink pixel.
type GlyphBitmap struct {
	Size int
	bits []bool
}

// NewGlyphBitmap returns an empty size×size bitmap.
func NewGlyphBitmap(size int) GlyphBitmap {
	size = max(0, size)
	return GlyphBitmap{Size: size, bits: make([]bool, size*size)}
}

// Get reports whether the pixel at (x, y) is ink. Out of range
// coordinates are never ink.
func (g GlyphBitmap) Get(x, y int) bool {
	if x < 0 || x >= g.Size || y < 0 || y >= g.Size {
		return false
	}
	return g.bits[y*g.Size+x]
}

// Set sets the pixel at (x, y). Out of range coordinates are ignored.
func (g *GlyphBitmap) Set(x, y int, value bool) {
	if x < 0 || x >= g.Size || y < 0 || y >= g.Size {
		return
	}
	g.bits[y*g.Size+x] = value
}

// Count returns the number of ink pixels.
func (g GlyphBitmap) Count() int {
	n := 0
	for _, b := range g.bits {
		if b {
			n++
		}
	}
	return n
}

// GlyphRenderer rasterizes a symbol into a size×size monochrome bitmap.
// Implementations must be deterministic for a given symbol and size, and
// return an error rather than a blank bitmap when drawing fails.
type GlyphRenderer interface {
	RenderGlyph(r rune, size int) (GlyphBitmap, error)
	// Name is the font family name, used by the HTML output.
	Name() string
}

// NewGlyphRenderer resolves a font identifier to a renderer. Recognised
// identifiers are "gomono" (the default), "goregular", "inconsolata",
// "basic", or a path to a .ttf file.
func NewGlyphRenderer(name string) (GlyphRenderer, error) {
	switch strings.ToLower(name) {
	case "", "gomono":
		return NewTrueTypeRenderer("Go Mono", gomono.TTF)
	case "goregular":
		return NewTrueTypeRenderer("Go", goregular.TTF)
	case "inconsolata":
		return NewFaceRenderer("Inconsolata", inconsolata.Regular8x16), nil
	case "basic":
		return NewFaceRenderer("monospace", basicfont.Face7x13), nil
	}
	if strings.HasSuffix(strings.ToLower(name), ".ttf") {
		return LoadTrueTypeRenderer(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
}

// TrueTypeRenderer rasterizes glyphs from a TrueType font with freetype.
type TrueTypeRenderer struct {
	name string
	font *truetype.Font
}

// NewTrueTypeRenderer parses ttf and returns a renderer for it.
func NewTrueTypeRenderer(name string, ttf []byte) (*TrueTypeRenderer, error) {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	return &TrueTypeRenderer{name: name, font: f}, nil
}

// LoadTrueTypeRenderer loads a TrueType font from file. The family name
// is taken from the file name.
func LoadTrueTypeRenderer(path string) (*TrueTypeRenderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewTrueTypeRenderer(name, data)
}

// Name returns the font family name.
func (t *TrueTypeRenderer) Name() string {
	return t.name
}

// RenderGlyph draws r at a font size of size points (72 DPI) into a
// size×size alpha image and thresholds it.
//
// The baseline comes from the face metrics so descenders are not
// clipped, and the glyph is centred horizontally on its advance width.
// Pixels with more than 25% coverage count as ink, which keeps thin
// strokes and dots that a 50% threshold would drop.
func (t *TrueTypeRenderer) RenderGlyph(r rune, size int) (GlyphBitmap, error) {
	bitmap := NewGlyphBitmap(size)
	if bitmap.Size == 0 {
		return bitmap, nil
	}

	face := truetype.NewFace(t.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, size, size))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.font)
	ctx.SetFontSize(float64(size))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := metrics.Ascent >> 6
	descent := metrics.Descent >> 6
	baselineY := (size + int(ascent) - int(descent)) / 2

	x := fixed.I(0)
	if adv, ok := face.GlyphAdvance(r); ok && adv < fixed.I(size) {
		x = (fixed.I(size) - adv) / 2
	}

	if _, err := ctx.DrawString(string(r), fixed.Point26_6{X: x, Y: fixed.I(baselineY)}); err != nil {
		return GlyphBitmap{}, fmt.Errorf("failed to draw %q with %s: %w", r, t.name, err)
	}

	return thresholdAlpha(img, bitmap), nil
}

// FaceRenderer rasterizes glyphs from a fixed-size font.Face, such as the
// bitmap faces in golang.org/x/image/font. The face's natural cell is
// scaled to the requested size with nearest-neighbour sampling.
type FaceRenderer struct {
	name string
	face font.Face
}

// NewFaceRenderer returns a renderer drawing with face.
func NewFaceRenderer(name string, face font.Face) *FaceRenderer {
	return &FaceRenderer{name: name, face: face}
}

// Name returns the font family name.
func (f *FaceRenderer) Name() string {
	return f.name
}

// RenderGlyph draws r into the face's cell and scales the cell to
// size×size.
func (f *FaceRenderer) RenderGlyph(r rune, size int) (GlyphBitmap, error) {
	bitmap := NewGlyphBitmap(size)
	if bitmap.Size == 0 {
		return bitmap, nil
	}

	metrics := f.face.Metrics()
	adv, ok := f.face.GlyphAdvance(r)
	if !ok || adv <= 0 {
		adv, _ = f.face.GlyphAdvance('M')
	}
	cellW := max(1, adv.Ceil())
	cellH := max(1, metrics.Height.Ceil())

	cell := image.NewAlpha(image.Rect(0, 0, cellW, cellH))
	d := font.Drawer{
		Dst:  cell,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(string(r))

	scaled := image.NewAlpha(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), cell, cell.Bounds(), draw.Src, nil)

	return thresholdAlpha(scaled, bitmap), nil
}

func thresholdAlpha(img *image.Alpha, bitmap GlyphBitmap) GlyphBitmap {
	for y := 0; y < bitmap.Size; y++ {
		for x := 0; x < bitmap.Size; x++ {
			if img.AlphaAt(x, y).A > alphaThreshold {
				bitmap.Set(x, y, true)
			}
		}
	}
	return bitmap
}
