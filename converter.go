// Package img2ascii converts raster images into grids of printable
// symbols by brightness matching.
//
// The image is cut into square tiles, each tile is scored by its average
// BT.709 luma, every candidate symbol is scored by the fraction of ink it
// leaves in a rasterized bitmap, and each tile becomes the symbol whose
// normalized ink density is closest to the tile's luma.
//
//	img, _ := imageutil.LoadImage("cat.png")
//	conv := img2ascii.NewConverter(img)
//	grid, err := conv.Convert(80, img2ascii.NewSymbolSet([]rune(" .:-=+*#%@")...))
package img2ascii

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrInvalidRequest is returned by Convert for a missing symbol set, a
// non-positive symbols-per-row count, or a row count so large that tiles
// would be narrower than one pixel.
var ErrInvalidRequest = errors.New("invalid conversion request")

// SymbolOrder selects the order symbols are profiled in. Symbols of equal
// brightness keep this order in the brightness table, which decides ties.
type SymbolOrder int

const (
	// NaturalOrder profiles symbols in ascending code point order.
	NaturalOrder SymbolOrder = iota
	// InsertionOrder profiles symbols in the order they were added to the
	// set.
	InsertionOrder
)

// Converter turns one image into symbol grids. It owns a tile cache that
// persists across Convert calls, so repeated conversions of the same image
// at different resolutions or with different symbol sets only score
// tiles they have not seen before.
//
// A Converter is not safe for concurrent use.
type Converter struct {
	// GlyphSize is the bitmap side length used to profile symbols.
	GlyphSize int
	// Order is the order symbols are profiled in.
	Order SymbolOrder

	img      Image
	renderer GlyphRenderer
	scorer   TileScorer
	cache    *TileCache
	logger   *log.Logger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter for img with the given options.
// Default values: GlyphSize=16, Order=NaturalOrder, the Go Mono font, the
// BT.709 luma scorer, and a discarding logger.
func NewConverter(img Image, opts ...ConverterOption) *Converter {
	c := &Converter{
		GlyphSize: DefaultGlyphSize,
		Order:     NaturalOrder,
		img:       img,
		scorer:    LumaScorer{},
		cache:     NewTileCache(),
		logger:    log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithGlyphRenderer sets the renderer used to profile symbols.
func WithGlyphRenderer(r GlyphRenderer) ConverterOption {
	return func(c *Converter) {
		c.renderer = r
	}
}

// WithGlyphSize sets the bitmap side length used to profile symbols.
func WithGlyphSize(size int) ConverterOption {
	return func(c *Converter) {
		c.GlyphSize = size
	}
}

// WithSymbolOrder sets the order symbols are profiled in.
func WithSymbolOrder(order SymbolOrder) ConverterOption {
	return func(c *Converter) {
		c.Order = order
	}
}

// WithScorer replaces the tile luminance scorer.
func WithScorer(s TileScorer) ConverterOption {
	return func(c *Converter) {
		c.scorer = s
	}
}

// WithLogger sets the logger that receives per-conversion debug output.
func WithLogger(l *log.Logger) ConverterOption {
	return func(c *Converter) {
		c.logger = l
	}
}

// Convert maps every tile of the image to a symbol from symbols.
//
// The tile side is width/symbolsPerRow pixels, and the grid has
// height/tile rows and width/tile columns. A nil symbol set, a
// non-positive symbolsPerRow or a non-positive GlyphSize is an
// ErrInvalidRequest; an empty symbol set yields an empty grid and no error.
func (c *Converter) Convert(symbolsPerRow int, symbols *SymbolSet) (Grid, error) {
	if symbols == nil {
		return nil, fmt.Errorf("%w: no symbol set", ErrInvalidRequest)
	}
	if symbolsPerRow <= 0 {
		return nil, fmt.Errorf("%w: symbols per row must be positive, got %d",
			ErrInvalidRequest, symbolsPerRow)
	}
	if c.GlyphSize <= 0 {
		return nil, fmt.Errorf("%w: glyph size must be positive, got %d",
			ErrInvalidRequest, c.GlyphSize)
	}
	if symbols.Len() == 0 {
		return Grid{}, nil
	}

	tileSize := c.img.Width() / symbolsPerRow
	if tileSize == 0 {
		return nil, fmt.Errorf("%w: %d symbols per row exceeds image width %d",
			ErrInvalidRequest, symbolsPerRow, c.img.Width())
	}

	renderer, err := c.GlyphRenderer()
	if err != nil {
		return nil, err
	}
	table, err := BuildBrightnessTable(c.orderedSymbols(symbols), renderer, c.GlyphSize)
	if err != nil {
		return nil, err
	}

	rows, cols := c.img.Height()/tileSize, c.img.Width()/tileSize
	grid := NewGrid(rows, cols)

	i := 0
	for bounds := range c.img.SquareTiles(tileSize) {
		if i >= rows*cols {
			break
		}
		luma := c.cache.GetOrCompute(NewTile(c.img, bounds), c.scorer)
		grid[i/cols][i%cols] = table.Match(luma)
		i++
	}

	hits, misses, _ := c.cache.Stats()
	c.logger.Debug("converted image",
		"tile", tileSize, "rows", rows, "cols", cols,
		"symbols", len(table), "cached", c.cache.Len(),
		"hits", hits, "misses", misses)

	return grid, nil
}

// CacheStats returns the tile cache's hit/miss statistics.
func (c *Converter) CacheStats() (hits, misses int, hitRate float64) {
	return c.cache.Stats()
}

// GlyphRenderer returns the renderer used to profile symbols, loading the
// default font on first use.
func (c *Converter) GlyphRenderer() (GlyphRenderer, error) {
	if c.renderer == nil {
		r, err := NewGlyphRenderer(DefaultFont)
		if err != nil {
			return nil, err
		}
		c.renderer = r
	}
	return c.renderer, nil
}

func (c *Converter) orderedSymbols(symbols *SymbolSet) []rune {
	if c.Order == InsertionOrder {
		return symbols.Runes()
	}
	return symbols.Sorted()
}

// minPixelsPerSymbol is the narrowest tile WidthBounds allows.
const minPixelsPerSymbol = 2

// WidthBounds returns the symbols-per-row range suited to img: at least
// max(1, width/height), so square tiles span the image height at least
// once, and at most width/2, so tiles are at least two pixels wide.
// For images under two pixels wide hi is below lo.
func WidthBounds(img Image) (lo, hi int) {
	lo = max(1, img.Width()/max(1, img.Height()))
	hi = img.Width() / minPixelsPerSymbol
	return lo, hi
}

// ClampWidth limits width to [lo, hi]. The lower bound wins when the
// range is empty.
func ClampWidth(width, lo, hi int) int {
	return max(min(width, hi), lo)
}
