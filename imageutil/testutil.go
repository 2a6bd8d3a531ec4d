package imageutil

// CreateGradientImage creates a horizontal gray gradient test image,
// black at the left edge and white at the right edge.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(1, width-1))
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard with
// squares of squareSize pixels, white at the origin.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateBlockImage creates an image made of uniform square blocks. The
// block at row r, column c is filled with colors[r][c]. All rows must have
// the same length.
func CreateBlockImage(blockSize int, colors [][]RGB) *RGBAImage {
	if len(colors) == 0 {
		return NewRGBAImage(0, 0)
	}
	img := NewRGBAImage(len(colors[0])*blockSize, len(colors)*blockSize)
	for r, row := range colors {
		for c, col := range row {
			for y := r * blockSize; y < (r+1)*blockSize; y++ {
				for x := c * blockSize; x < (c+1)*blockSize; x++ {
					img.SetRGB(x, y, col)
				}
			}
		}
	}
	return img
}
