// Package config loads img2ascii settings from a TOML file.
//
// Every field has a default, so a missing file or a partial file is
// valid. Command-line flags are applied on top of the loaded values by
// the cli package.
//
//	font = "inconsolata"
//	glyph_size = 24
//	chars = ["0-9", "a-z", "space"]
//	width = 128
//	output = "cat.html"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wbrown/img2ascii"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds the conversion and shell settings.
type Config struct {
	// Font is a built-in font name or a path to a .ttf file.
	Font string `toml:"font"`
	// GlyphSize is the bitmap side length used to profile symbols.
	GlyphSize int `toml:"glyph_size"`
	// Chars lists the range expressions of the initial symbol set.
	Chars []string `toml:"chars"`
	// Width is the initial number of symbols per row.
	Width int `toml:"width"`
	// MinWidth and MaxWidth override the resolution bounds derived from
	// the image. Zero means derived.
	MinWidth int `toml:"min_width"`
	MaxWidth int `toml:"max_width"`
	// Output is the file renders are written to.
	Output string `toml:"output"`
	// Console sends renders to standard output instead of Output.
	Console bool `toml:"console"`
	// MaxImageWidth downscales wider images before conversion. Zero
	// disables downscaling.
	MaxImageWidth int `toml:"max_image_width"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Font:      img2ascii.DefaultFont,
		GlyphSize: img2ascii.DefaultGlyphSize,
		Chars:     []string{"0-9"},
		Width:     64,
		Output:    "out.html",
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s",
			ErrInvalid, path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks field ranges and range expressions.
func (c Config) Validate() error {
	if c.GlyphSize <= 0 {
		return fmt.Errorf("%w: glyph_size must be positive, got %d", ErrInvalid, c.GlyphSize)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalid, c.Width)
	}
	if c.MinWidth < 0 {
		return fmt.Errorf("%w: min_width must not be negative, got %d", ErrInvalid, c.MinWidth)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must not be negative, got %d", ErrInvalid, c.MaxWidth)
	}
	if c.MinWidth > 0 && c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
		return fmt.Errorf("%w: min_width %d exceeds max_width %d", ErrInvalid, c.MinWidth, c.MaxWidth)
	}
	if c.MaxImageWidth < 0 {
		return fmt.Errorf("%w: max_image_width must not be negative, got %d", ErrInvalid, c.MaxImageWidth)
	}
	for _, expr := range c.Chars {
		if _, _, ok := img2ascii.ParseRange(expr); !ok {
			return fmt.Errorf("%w: chars entry %q is not a symbol range", ErrInvalid, expr)
		}
	}
	if !c.Console && c.Output == "" {
		return fmt.Errorf("%w: output must be set unless console is enabled", ErrInvalid)
	}
	return nil
}

// Symbols builds the symbol set described by Chars. Invalid entries are
// skipped; call Validate first to reject them.
func (c Config) Symbols() *img2ascii.SymbolSet {
	s := img2ascii.NewSymbolSet()
	for _, expr := range c.Chars {
		if lo, hi, ok := img2ascii.ParseRange(expr); ok {
			s.AddRange(lo, hi)
		}
	}
	return s
}
