package rimage

import (
	"image"

	"go.viam.com/ppm/utils"
)

// A PixelFilter decides the new color of the pixel at (x, y). Returning
// false keeps the existing color. Filters run concurrently across rows.
type PixelFilter func(img *Image, x, y int) (Color, bool)

// Filter returns a copy of the image with f applied to every pixel. f
// always sees the original image, never partially filtered output.
func (i *Image) Filter(f PixelFilter) *Image {
	out := i.Clone()
	utils.ParallelForEachPixel(image.Pt(out.width, out.height), func(x, y int) {
		if c, ok := f(i, x, y); ok {
			out.setXY(x, y, c)
		}
	})
	return out
}

// CircleFilter paints c over the ellipse inscribed in the image.
func CircleFilter(c Color) PixelFilter {
	return func(img *Image, x, y int) (Color, bool) {
		dx := toRatio(x, img.Width()) - 1
		dy := toRatio(y, img.Height()) - 1
		if dx*dx+dy*dy < 1 {
			return c, true
		}
		return Color{}, false
	}
}

// toRatio maps [0, max) onto [0, 2).
func toRatio(n, max int) float64 {
	return 2 * float64(n) / float64(max)
}
