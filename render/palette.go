package render

import (
	"image/color"
	"strings"
)

// Palette provides color schemes for layout rendering
type Palette struct {
	NodeColors []string
	EdgeColors []string
	Background string
}

// DefaultPalette returns a light palette with vibrant node colors
func DefaultPalette() *Palette {
	return &Palette{
		NodeColors: []string{
			"#4285F4", // Blue
			"#EA4335", // Red
			"#FBBC05", // Yellow
			"#34A853", // Green
			"#673AB7", // Purple
			"#00BCD4", // Cyan
			"#FF5722", // Deep Orange
		},
		EdgeColors: []string{"#666666", "#888888"},
		Background: "#f8f8f8",
	}
}

// DarkPalette returns a palette for dark backgrounds
func DarkPalette() *Palette {
	return &Palette{
		NodeColors: []string{"#FFFFFF"},
		EdgeColors: []string{"#BBBBBB"},
		Background: "#212121",
	}
}

// NodeColor returns the color for the i-th node
func (p *Palette) NodeColor(i int) string {
	return p.NodeColors[i%len(p.NodeColors)]
}

// EdgeColor returns the color for the i-th edge
func (p *Palette) EdgeColor(i int) string {
	return p.EdgeColors[i%len(p.EdgeColors)]
}

// ParseHexColor converts "#rrggbb" or "#rgb" to an opaque color. Invalid
// input yields black.
func ParseHexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	switch len(hex) {
	case 3:
		return color.RGBA{parseHexDigit(hex[0]) * 17, parseHexDigit(hex[1]) * 17, parseHexDigit(hex[2]) * 17, 255}
	case 6:
		return color.RGBA{parseHexByte(hex[0:2]), parseHexByte(hex[2:4]), parseHexByte(hex[4:6]), 255}
	}
	return color.RGBA{0, 0, 0, 255}
}

func parseHexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func parseHexByte(s string) uint8 {
	return parseHexDigit(s[0])<<4 | parseHexDigit(s[1])
}
