package colors

// Color is a normalized RGBA color.
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}
)

// RGB builds an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 255) }

// RGBA builds a color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// FromUint32 decodes 0xRRGGBBAA, so 0xFF0000FF is opaque red.
func FromUint32(c uint32) Color {
	return RGBA(uint8(c>>24), uint8(c>>16), uint8(c>>8), uint8(c))
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 returns the color quantized to 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
