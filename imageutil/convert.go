package imageutil

// BT.709 luma coefficients.
const (
	LumaRed   = 0.2126
	LumaGreen = 0.7152
	LumaBlue  = 0.0722
)

// Luma returns the BT.709 luma of c normalized to [0, 1]. The channels are
// summed red, blue, green; changing the order changes the last bit.
func Luma(c RGB) float64 {
	return (float64(c.R)*LumaRed + float64(c.B)*LumaBlue + float64(c.G)*LumaGreen) / 255
}
