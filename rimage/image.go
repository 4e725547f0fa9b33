// Package rimage holds the in-memory RGB image used across the module and the
// codecs that move it to and from disk, most importantly the strict binary
// PPM (P6) codec.
package rimage

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
)

// Image is a fixed size, row-major grid of RGB colors.
type Image struct {
	immutable     image.Image
	data          []Color
	width, height int
	mu            sync.Mutex
}

// NewImage returns a black image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		data:   make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// NewImageFilled returns an image of the given size where every pixel is fill.
func NewImageFilled(width, height int, fill Color) *Image {
	img := NewImage(width, height)
	for idx := range img.data {
		img.data[idx] = fill
	}
	return img
}

// NewImageFromStdImage wraps img without copying it. The pixels are only
// copied the first time the returned image is written to.
func NewImageFromStdImage(img image.Image) *Image {
	if ri, ok := img.(*Image); ok {
		return ri
	}
	bounds := img.Bounds()
	return &Image{
		immutable: offsetImage{img, bounds.Min},
		width:     bounds.Dx(),
		height:    bounds.Dy(),
	}
}

// offsetImage reads an image whose bounds may not start at the origin
// with zero-based coordinates.
type offsetImage struct {
	image.Image
	min image.Point
}

func (o offsetImage) At(x, y int) color.Color {
	return o.Image.At(x+o.min.X, y+o.min.Y)
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

// In reports whether (x, y) lies inside the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

// Width returns the number of columns.
func (i *Image) Width() int {
	return i.width
}

// Height returns the number of rows.
func (i *Image) Height() int {
	return i.height
}

// At implements image.Image. Out of bounds points are black.
func (i *Image) At(x, y int) color.Color {
	if !i.In(x, y) {
		return Black
	}
	return i.GetXY(x, y)
}

// Get returns the color at p. p must be in bounds.
func (i *Image) Get(p image.Point) Color {
	return i.GetXY(p.X, p.Y)
}

// GetXY returns the color at (x, y). The point must be in bounds.
func (i *Image) GetXY(x, y int) Color {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.immutable != nil {
		return NewColorFromColor(i.immutable.At(x, y))
	}
	return i.data[i.kxy(x, y)]
}

// Set sets the color at p, failing if p is outside of the image.
func (i *Image) Set(p image.Point, c Color) error {
	return i.SetXY(p.X, p.Y, c)
}

// SetXY sets the color at (x, y), failing if the point is outside of the image.
func (i *Image) SetXY(x, y int, c Color) error {
	if !i.In(x, y) {
		return errors.Errorf("point (%d,%d) out of bounds for %dx%d image", x, y, i.width, i.height)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.makeMutable()
	i.setXY(x, y, c)
	return nil
}

// setXY writes without a bounds check or locking. Callers guarantee that
// the image is mutable, exclusively owned and that 0 <= x < width and
// 0 <= y < height.
func (i *Image) setXY(x, y int, c Color) {
	i.data[i.kxy(x, y)] = c
}

// Pixels returns a copy of every pixel in row-major order.
func (i *Image) Pixels() []Color {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.makeMutable()
	out := make([]Color, len(i.data))
	copy(out, i.data)
	return out
}

// Clone returns a deep copy of the image.
func (i *Image) Clone() *Image {
	return &Image{
		data:   i.Pixels(),
		width:  i.width,
		height: i.height,
	}
}

// Equal reports whether both images have the same size and pixels.
func (i *Image) Equal(other *Image) bool {
	if i.width != other.width || i.height != other.height {
		return false
	}
	a, b := i.Pixels(), other.Pixels()
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}

// WriteTo writes the image to fn, choosing the format from its extension.
func (i *Image) WriteTo(fn string) error {
	return WriteImageToFile(fn, i)
}

func (i *Image) makeMutable() {
	if i.immutable == nil {
		return
	}
	i.data = make([]Color, i.width*i.height)
	for y := 0; y < i.height; y++ {
		for x := 0; x < i.width; x++ {
			i.setXY(x, y, NewColorFromColor(i.immutable.At(x, y)))
		}
	}
	i.immutable = nil
}
