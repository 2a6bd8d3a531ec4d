package img2ascii

import (
	"fmt"
	"math"
)

// DefaultGlyphSize is the side length of the bitmap each symbol is
// rasterized into when measuring its brightness.
const DefaultGlyphSize = 16

// GlyphBrightness returns the fraction of ink pixels when symbol is
// rendered into a size×size bitmap. A non-positive size is an
// ErrInvalidRequest.
func GlyphBrightness(r GlyphRenderer, symbol rune, size int) (float64, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: glyph size must be positive, got %d", ErrInvalidRequest, size)
	}
	bitmap, err := r.RenderGlyph(symbol, size)
	if err != nil {
		return 0, err
	}
	return float64(bitmap.Count()) / float64(size*size), nil
}

// Normalize linearly rescales raw to [0, 1], preserving length and order.
// When every score is equal the result is all 1.0: a uniform symbol set is
// treated as uniformly, maximally bright.
func Normalize(raw []float64) []float64 {
	result := make([]float64, len(raw))
	if len(raw) == 0 {
		return result
	}

	minValue, maxValue := raw[0], raw[0]
	for _, v := range raw {
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}

	if maxValue == minValue {
		for i := range result {
			result[i] = 1
		}
		return result
	}
	for i, v := range raw {
		result[i] = (v - minValue) / (maxValue - minValue)
	}
	return result
}

// SymbolBrightness pairs a symbol with its normalized brightness.
type SymbolBrightness struct {
	Symbol     rune
	Brightness float64
}

// BrightnessTable is a sequence of symbols in non-decreasing brightness
// order. Symbols of equal brightness keep the order they were profiled in.
type BrightnessTable []SymbolBrightness

// BuildBrightnessTable profiles every symbol with r at the given bitmap
// size, normalizes the scores and stable-sorts the pairs by brightness.
// The first rendering error aborts the build.
func BuildBrightnessTable(symbols []rune, r GlyphRenderer, size int) (BrightnessTable, error) {
	raw := make([]float64, len(symbols))
	for i, s := range symbols {
		b, err := GlyphBrightness(r, s, size)
		if err != nil {
			return nil, fmt.Errorf("failed to profile %q: %w", s, err)
		}
		raw[i] = b
	}
	return NewBrightnessTable(symbols, Normalize(raw)), nil
}

// NewBrightnessTable pairs symbols[i] with brightness[i] and sorts the
// pairs. Both slices must have the same length.
func NewBrightnessTable(symbols []rune, brightness []float64) BrightnessTable {
	table := make(BrightnessTable, len(symbols))
	for i, s := range symbols {
		table[i] = SymbolBrightness{Symbol: s, Brightness: brightness[i]}
	}
	mergeSort(table)
	return table
}

// mergeSort sorts pairs ascending by brightness. On equal brightness the
// left element goes first, so equal pairs keep their input order.
func mergeSort(pairs BrightnessTable) {
	if len(pairs) < 2 {
		return
	}
	mid := len(pairs) / 2
	left := append(BrightnessTable(nil), pairs[:mid]...)
	right := append(BrightnessTable(nil), pairs[mid:]...)
	mergeSort(left)
	mergeSort(right)

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if left[i].Brightness <= right[j].Brightness {
			pairs[k] = left[i]
			i++
		} else {
			pairs[k] = right[j]
			j++
		}
		k++
	}
	k += copy(pairs[k:], left[i:])
	copy(pairs[k:], right[j:])
}

// Match returns the symbol whose brightness is closest to target.
//
// Targets at or beyond either end of the table clamp to that end. Inside
// the range a binary search stops at the first candidate that brackets the
// target strictly; when both neighbours are equally close the lower
// indexed, darker symbol wins. Match panics on an empty table.
func (t BrightnessTable) Match(target float64) rune {
	last := len(t) - 1
	if target <= t[0].Brightness {
		return t[0].Symbol
	}
	if target >= t[last].Brightness {
		return t[last].Symbol
	}

	lo, hi, mid := 0, len(t), 0
	for lo < hi {
		mid = (lo + hi) / 2
		v := t[mid].Brightness
		if v == target {
			return t[mid].Symbol
		}
		if v > target {
			if mid > 0 && t[mid-1].Brightness < target {
				return t.closest(mid-1, mid, target)
			}
			hi = mid
		} else {
			if mid < last && t[mid+1].Brightness > target {
				return t.closest(mid, mid+1, target)
			}
			lo = mid + 1
		}
	}
	return t[mid].Symbol
}

// closest picks between the neighbours lower < upper, preferring lower on
// a distance tie.
func (t BrightnessTable) closest(lower, upper int, target float64) rune {
	if math.Abs(t[upper].Brightness-target) < math.Abs(t[lower].Brightness-target) {
		return t[upper].Symbol
	}
	return t[lower].Symbol
}

// Symbols returns the table's symbols in brightness order.
func (t BrightnessTable) Symbols() []rune {
	out := make([]rune, len(t))
	for i, p := range t {
		out[i] = p.Symbol
	}
	return out
}
