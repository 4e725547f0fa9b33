package rimage

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

var ppmChannelNames = [3]string{"red", "green", "blue"}

// DecodePPM decodes a binary PPM (P6) file held entirely in memory.
//
// Only a max value of 255 is supported and the header may not contain
// comments. Bytes after the last pixel are ignored.
func DecodePPM(data []byte) (*Image, error) {
	c := newByteCursor(data)
	hdr, err := readPPMHeader(c)
	if err != nil {
		return nil, err
	}
	if err := checkPPMPayload(c, hdr); err != nil {
		return nil, err
	}

	img := NewImageFilled(hdr.width, hdr.height, White)
	for y := 0; y < hdr.height; y++ {
		for x := 0; x < hdr.width; x++ {
			col, err := readPPMColor(c)
			if err != nil {
				return nil, err
			}
			// x and y are bounded by the loops and img is not shared yet.
			img.setXY(x, y, col)
		}
	}
	return img, nil
}

// checkPPMPayload fails early when the input is too short for the header's
// dimensions. The error is the same one the pixel loop would stop with.
func checkPPMPayload(c *byteCursor, hdr ppmHeader) error {
	need := uint64(hdr.width) * uint64(hdr.height) * 3
	have := c.remaining()
	if uint64(have) >= need {
		return nil
	}
	return ppmChannelEOF(have % 3)
}

func ppmChannelEOF(channel int) error {
	return errors.Wrapf(ErrUnexpectedEOF, "reached end of file before reading the next %s value", ppmChannelNames[channel])
}

// readPPMColor reads one red, green, blue triple.
func readPPMColor(c *byteCursor) (Color, error) {
	var rgb [3]uint8
	for channel := range rgb {
		b, ok := c.next()
		if !ok {
			return Color{}, ppmChannelEOF(channel)
		}
		rgb[channel] = b
	}
	return NewColor(rgb[0], rgb[1], rgb[2]), nil
}

// EncodePPMBytes returns img as a binary PPM: the header
// "P6\n<width> <height>\n255\n" followed by every pixel's red, green and
// blue bytes in row-major order.
func EncodePPMBytes(img *Image) []byte {
	header := fmt.Sprintf(ppmHeaderText, img.Width(), img.Height())
	pixels := img.Pixels()
	out := make([]byte, 0, len(header)+3*len(pixels))
	out = append(out, header...)
	for _, p := range pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}

// EncodePPM writes img to w as a binary PPM.
func EncodePPM(w io.Writer, img *Image) error {
	_, err := w.Write(EncodePPMBytes(img))
	return err
}
