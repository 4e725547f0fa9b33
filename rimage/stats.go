package rimage

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ChannelStats summarizes one color channel over every pixel of an image.
type ChannelStats struct {
	Name   string
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats returns the red, green and blue channel statistics of img.
func Stats(img *Image) ([3]ChannelStats, error) {
	var out [3]ChannelStats
	pixels := img.Pixels()
	if len(pixels) == 0 {
		return out, errors.Errorf("cannot compute stats of an empty %dx%d image", img.Width(), img.Height())
	}

	var channels [3]stats.Float64Data
	for ch := range channels {
		channels[ch] = make(stats.Float64Data, len(pixels))
	}
	for i, p := range pixels {
		channels[0][i] = float64(p.R)
		channels[1][i] = float64(p.G)
		channels[2][i] = float64(p.B)
	}

	for ch, data := range channels {
		mean, err := stats.Mean(data)
		median, err2 := stats.Median(data)
		sd, err3 := stats.StandardDeviation(data)
		minVal, err4 := stats.Min(data)
		maxVal, err5 := stats.Max(data)
		if err := multierr.Combine(err, err2, err3, err4, err5); err != nil {
			return out, errors.Wrapf(err, "%s channel", ppmChannelNames[ch])
		}
		out[ch] = ChannelStats{
			Name:   ppmChannelNames[ch],
			Mean:   mean,
			Median: median,
			StdDev: sd,
			Min:    minVal,
			Max:    maxVal,
		}
	}
	return out, nil
}
