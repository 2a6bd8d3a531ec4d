package img2ascii

import (
	"crypto/sha256"
	"encoding/binary"
	"image"
	"iter"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// Image is the pixel source a Converter reads from. *imageutil.RGBAImage
// implements it.
type Image interface {
	Width() int
	Height() int
	GetRGB(x, y int) imageutil.RGB
	// SquareTiles yields the size×size tiles that fit inside the image in
	// row-major order.
	SquareTiles(size int) iter.Seq[image.Rectangle]
}

// Tile is a square region of an Image.
type Tile struct {
	Bounds image.Rectangle
	img    Image
}

// NewTile returns the tile of img covering bounds.
func NewTile(img Image, bounds image.Rectangle) Tile {
	return Tile{Bounds: bounds, img: img}
}

// Pixels yields the tile's pixels in row-major order.
func (t Tile) Pixels() iter.Seq[imageutil.RGB] {
	return func(yield func(imageutil.RGB) bool) {
		for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
			for x := t.Bounds.Min.X; x < t.Bounds.Max.X; x++ {
				if !yield(t.img.GetRGB(x, y)) {
					return
				}
			}
		}
	}
}

// TileKey identifies a tile by content: tiles with the same dimensions
// and the same pixels have the same key wherever they sit in the image.
type TileKey [sha256.Size]byte

// Key hashes the tile's dimensions followed by its RGB bytes.
func (t Tile) Key() TileKey {
	h := sha256.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(t.Bounds.Dx()))
	binary.LittleEndian.PutUint64(dims[8:], uint64(t.Bounds.Dy()))
	h.Write(dims[:])

	row := make([]byte, 0, 3*max(0, t.Bounds.Dx()))
	for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
		row = row[:0]
		for x := t.Bounds.Min.X; x < t.Bounds.Max.X; x++ {
			c := t.img.GetRGB(x, y)
			row = append(row, c.R, c.G, c.B)
		}
		h.Write(row)
	}

	var key TileKey
	h.Sum(key[:0])
	return key
}

// TileScorer computes a luminance score in [0, 1] for a tile.
type TileScorer interface {
	Score(t Tile) float64
}

// ScorerFunc adapts a function to TileScorer.
type ScorerFunc func(t Tile) float64

// Score calls f(t).
func (f ScorerFunc) Score(t Tile) float64 { return f(t) }

// LumaScorer scores a tile as the mean BT.709 luma of its pixels.
type LumaScorer struct{}

// Score returns the average normalized luma, or NaN for an empty tile.
func (LumaScorer) Score(t Tile) float64 {
	var sum float64
	var n int64
	for c := range t.Pixels() {
		sum += imageutil.Luma(c)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
