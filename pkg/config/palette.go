package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Palette 有序颜色列表，配置文件中以十六进制字符串数组表示
//
//	colors: ["FFD700", "#FF1493", "fff"]
type Palette []color.RGBA

// ParseHexColor 解析 "RRGGBB"、"#RRGGBB" 或 "#RGB" 形式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// HexColor formats c as upper-case "RRGGBB" (alpha is dropped).
func HexColor(c color.RGBA) string {
	return strings.ToUpper(strings.TrimPrefix(colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex(), "#"))
}

// ParsePalette parses a list of hex strings.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Palette) UnmarshalYAML(value *yaml.Node) error {
	var hexes []string
	if err := value.Decode(&hexes); err != nil {
		return fmt.Errorf("colors must be a list of hex strings: %w", err)
	}
	parsed, err := ParsePalette(hexes)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Palette) MarshalYAML() (interface{}, error) {
	hexes := make([]string, len(p))
	for i, c := range p {
		hexes[i] = HexColor(c)
	}
	return hexes, nil
}
