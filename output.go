package img2ascii

import (
	"bufio"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// WriteText writes each grid row followed by a newline.
func WriteText(w io.Writer, g Grid) error {
	bw := bufio.NewWriter(w)
	for _, row := range g {
		bw.WriteString(string(row))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

var htmlTemplate = template.Must(template.New("ascii").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ASCII Art</title>
</head>
<body>
<div style="font-family: '{{.Font}}', monospace; font-size: 4pt; line-height: 1; white-space: pre; background: black; color: white;">{{range .Rows}}{{.}}<br>{{end}}</div>
</body>
</html>
`))

// WriteHTML writes g as a standalone HTML document displayed in
// fontFamily. Symbols are escaped.
func WriteHTML(w io.Writer, g Grid, fontFamily string) error {
	rows := make([]string, len(g))
	for i, row := range g {
		rows[i] = string(row)
	}
	return htmlTemplate.Execute(w, struct {
		Font string
		Rows []string
	}{Font: fontFamily, Rows: rows})
}

// RenderPNG draws g back into an image, cell×cell pixels per symbol,
// with white ink on a black background.
func RenderPNG(g Grid, r GlyphRenderer, cell int) (*image.RGBA, error) {
	cell = max(1, cell)
	img := image.NewRGBA(image.Rect(0, 0, g.Cols()*cell, g.Rows()*cell))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	glyphs := make(map[rune]GlyphBitmap)
	for y, row := range g {
		for x, symbol := range row {
			bitmap, ok := glyphs[symbol]
			if !ok {
				var err error
				if bitmap, err = r.RenderGlyph(symbol, cell); err != nil {
					return nil, err
				}
				glyphs[symbol] = bitmap
			}
			renderBitmap(img, bitmap, x*cell, y*cell)
		}
	}
	return img, nil
}

// renderBitmap draws the ink pixels of bitmap with its top-left corner at
// (startX, startY).
func renderBitmap(img *image.RGBA, bitmap GlyphBitmap, startX, startY int) {
	for y := 0; y < bitmap.Size; y++ {
		for x := 0; x < bitmap.Size; x++ {
			if bitmap.Get(x, y) {
				img.SetRGBA(startX+x, startY+y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
}

// WriteFile writes g to path in the format implied by its extension:
// .html and .htm produce an HTML document, .png a rendered image with
// cell pixels per symbol, and anything else plain text.
func WriteFile(path string, g Grid, r GlyphRenderer, cell int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err := RenderPNG(g, r, cell)
		if err != nil {
			return err
		}
		return imageutil.SavePNG(img, path)
	case ".html", ".htm":
		return writeFile(path, func(w io.Writer) error {
			return WriteHTML(w, g, r.Name())
		})
	default:
		return writeFile(path, func(w io.Writer) error {
			return WriteText(w, g)
		})
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
