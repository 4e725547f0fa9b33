package rimage

import (
	"sort"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var resampleFilters = map[string]imaging.ResampleFilter{
	"nearest":  imaging.NearestNeighbor,
	"box":      imaging.Box,
	"linear":   imaging.Linear,
	"catmull":  imaging.CatmullRom,
	"lanczos":  imaging.Lanczos,
	"gaussian": imaging.Gaussian,
}

// ResampleFilterNames lists the filters accepted by Resize.
func ResampleFilterNames() []string {
	names := lo.Keys(resampleFilters)
	sort.Strings(names)
	return names
}

// Resize scales the image to width x height using the named resampling
// filter. A zero width or height keeps the aspect ratio.
func Resize(img *Image, width, height int, filter string) (*Image, error) {
	f, ok := resampleFilters[filter]
	if !ok {
		return nil, errors.Errorf("unknown resample filter %q, expected one of %v", filter, ResampleFilterNames())
	}
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, errors.Errorf("invalid size %dx%d", width, height)
	}
	return NewImageFromStdImage(imaging.Resize(img, width, height, f)).Clone(), nil
}

// FlipH mirrors the image left to right.
func FlipH(img *Image) *Image {
	return NewImageFromStdImage(imaging.FlipH(img)).Clone()
}

// FlipV mirrors the image top to bottom.
func FlipV(img *Image) *Image {
	return NewImageFromStdImage(imaging.FlipV(img)).Clone()
}
