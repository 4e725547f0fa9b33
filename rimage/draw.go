package rimage

import (
	"image"

	"github.com/fogleman/gg"
)

// DrawCircle returns a copy of img with an anti-aliased disk of color c
// centered at center.
func DrawCircle(img *Image, center image.Point, radius float64, c Color) *Image {
	dc := gg.NewContextForImage(img)
	dc.SetColor(c)
	dc.DrawCircle(float64(center.X), float64(center.Y), radius)
	dc.Fill()
	return NewImageFromStdImage(dc.Image()).Clone()
}

// DrawEllipse is DrawCircle with independent horizontal and vertical radii.
func DrawEllipse(img *Image, center image.Point, rx, ry float64, c Color) *Image {
	dc := gg.NewContextForImage(img)
	dc.SetColor(c)
	dc.DrawEllipse(float64(center.X), float64(center.Y), rx, ry)
	dc.Fill()
	return NewImageFromStdImage(dc.Image()).Clone()
}
