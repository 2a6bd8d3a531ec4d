package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageFromImageTranslatesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, color.RGBA{R: 7, G: 8, B: 9, A: 255})

	img := RGBAImageFromImage(src)
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{R: 7, G: 8, B: 9}) {
		t.Errorf("Expected origin pixel {7 8 9}, got %v", got)
	}
}

func TestSquareTiles(t *testing.T) {
	img := NewRGBAImage(25, 12)

	var tiles []image.Rectangle
	for r := range img.SquareTiles(5) {
		tiles = append(tiles, r)
	}

	// 25/5 = 5 columns, 12/5 = 2 rows
	if len(tiles) != 10 {
		t.Fatalf("Expected 10 tiles, got %d", len(tiles))
	}
	if tiles[0] != image.Rect(0, 0, 5, 5) {
		t.Errorf("First tile should be at origin, got %v", tiles[0])
	}
	if tiles[4] != image.Rect(20, 0, 25, 5) {
		t.Errorf("Tiles should be row-major, tile 4 is %v", tiles[4])
	}
	if tiles[5] != image.Rect(0, 5, 5, 10) {
		t.Errorf("Tile 5 should start the second row, got %v", tiles[5])
	}

	// The sequence restarts on every range.
	count := 0
	for range img.SquareTiles(5) {
		count++
	}
	if count != 10 {
		t.Errorf("Second iteration should also yield 10 tiles, got %d", count)
	}
}

func TestSquareTilesEarlyStop(t *testing.T) {
	img := NewRGBAImage(10, 10)
	count := 0
	for range img.SquareTiles(2) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("Expected to stop after 3 tiles, got %d", count)
	}
}

func TestSquareTilesDegenerate(t *testing.T) {
	img := NewRGBAImage(10, 10)
	for _, size := range []int{0, -1, 11} {
		for r := range img.SquareTiles(size) {
			t.Errorf("size %d: expected no tiles, got %v", size, r)
		}
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want float64
	}{
		{"black", RGB{}, 0},
		{"white", RGB{R: 255, G: 255, B: 255}, 1},
		{"red", RGB{R: 255}, 0.2126},
		{"green", RGB{G: 255}, 0.7152},
		{"blue", RGB{B: 255}, 0.0722},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luma(tt.c); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Luma(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	// Upscale
	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestFitWidth(t *testing.T) {
	img := CreateGradientImage(200, 100)

	if got := FitWidth(img, 0); got != img {
		t.Error("FitWidth with 0 should return the image unchanged")
	}
	if got := FitWidth(img, 400); got != img {
		t.Error("FitWidth should not upscale")
	}

	fitted := FitWidth(img, 50)
	if fitted.Width() != 50 || fitted.Height() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", fitted.Width(), fitted.Height())
	}
}

func TestLoadSavePNG(t *testing.T) {
	img := CreateCheckerboardImage(64, 64, 8)
	path := filepath.Join(t.TempDir(), "test.png")

	if err := SavePNG(img.RGBA, path); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	if !bytes.Equal(img.Pix, loaded.Pix) {
		t.Error("PNG round trip should preserve pixels")
	}
}

func TestDecodeBMP(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{R: 10, G: 20, B: 30})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img.RGBA); err != nil {
		t.Fatalf("Failed to encode BMP: %v", err)
	}

	decoded, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("Failed to decode BMP: %v", err)
	}
	if got := decoded.GetRGB(3, 3); got != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("Expected {10 20 30}, got %v", got)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected an error for undecodable data")
	}
}

func TestCreateBlockImage(t *testing.T) {
	img := CreateBlockImage(3, [][]RGB{
		{{R: 1}, {R: 2}},
		{{R: 3}, {R: 4}},
	})
	if img.Width() != 6 || img.Height() != 6 {
		t.Fatalf("Expected 6x6, got %dx%d", img.Width(), img.Height())
	}
	if img.GetRGB(4, 4).R != 4 {
		t.Errorf("Expected bottom-right block value 4, got %d", img.GetRGB(4, 4).R)
	}
}
