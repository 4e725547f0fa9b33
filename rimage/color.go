package rimage

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is an opaque RGB color with 8 bits per channel.
type Color struct {
	R, G, B uint8
}

// Some commonly used colors.
var (
	Black   = NewColor(0, 0, 0)
	White   = NewColor(255, 255, 255)
	Red     = NewColor(255, 0, 0)
	Green   = NewColor(0, 255, 0)
	Blue    = NewColor(0, 0, 255)
	Cyan    = NewColor(0, 255, 255)
	Magenta = NewColor(255, 0, 255)
	Yellow  = NewColor(255, 255, 0)
)

// NewColor returns a color from its red, green and blue channels.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// NewColorFromColor converts any color.Color into a Color, dropping alpha.
func NewColorFromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: nc.R, G: nc.G, B: nc.B}
}

// ParseHexColor parses colors of the form "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrapf(err, "bad color %q", s)
	}
	r, g, b := cc.RGB255()
	return NewColor(r, g, b), nil
}

func (c Color) String() string {
	return fmt.Sprintf("%s (%d,%d,%d)", c.Hex(), c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%.2x%.2x%.2x", c.R, c.G, c.B)
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

func (c Color) toColorful() colorful.Color {
	cc, _ := colorful.MakeColor(c)
	return cc
}

// HSV returns hue in degrees [0, 360) and saturation and value in [0, 1].
func (c Color) HSV() (float64, float64, float64) {
	return c.toColorful().Hsv()
}

// DistanceLab is the perceptual distance between two colors.
func (c Color) DistanceLab(b Color) float64 {
	return c.toColorful().DistanceLab(b.toColorful())
}

type theColorModel struct{}

func (m theColorModel) Convert(c color.Color) color.Color {
	return NewColorFromColor(c)
}

// ColorModel converts any color to a Color.
var ColorModel color.Model = theColorModel{}
