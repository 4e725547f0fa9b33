package rimage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
)

var ppmFieldNames = [3]string{"width", "height", "max value"}

// DecodeLenientPPM decodes binary PPM (P6) files whose header DecodePPM
// rejects because of its layout: any run of whitespace may separate the
// magic number and the three fields, and "#" comments run to the end of the
// line. The max value must still be 255, and exactly one whitespace byte
// must come between it and the pixels.
func DecodeLenientPPM(data []byte) (*Image, error) {
	normalized, err := normalizePPMHeader(data)
	if err != nil {
		return nil, errors.Wrap(err, "lenient ppm decode")
	}
	img, err := decodeRecovered(ppm.Decode, normalized)
	if err != nil {
		return nil, errors.Wrap(err, "lenient ppm decode")
	}
	return NewImageFromStdImage(img).Clone(), nil
}

// normalizePPMHeader returns data with its header rewritten to the exact
// layout EncodePPM writes. Pixel bytes are not touched.
func normalizePPMHeader(data []byte) ([]byte, error) {
	c := newByteCursor(data)

	b, ok := c.next()
	if !ok {
		return nil, errors.Wrapf(ErrEmptyInput, "expected magic number %q, got end of input", ppmMagic)
	}
	if b != ppmMagic {
		return nil, errors.Wrapf(ErrMagicMismatch, "expected header to start with %q, got %q", ppmMagic, b)
	}
	if b, ok = c.next(); !ok {
		return nil, errors.Wrap(ErrUnexpectedEOF, "reached end of file before the format marker")
	}
	if b != ppmBinaryRGB {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "expected a P6 file, got P%c", b)
	}

	var fields [3]int
	for i, name := range ppmFieldNames {
		var err error
		if fields[i], err = readLenientPPMNumber(c, name); err != nil {
			return nil, err
		}
	}
	hdr := ppmHeader{width: fields[0], height: fields[1], maxValue: fields[2]}
	if hdr.maxValue != ppmMaxValue {
		return nil, errors.Wrapf(ErrUnsupportedMaxValue, "expected max value of %d, got %d", ppmMaxValue, hdr.maxValue)
	}
	if err := checkPPMPayload(c, hdr); err != nil {
		return nil, err
	}

	out := fmt.Appendf(nil, ppmHeaderText, hdr.width, hdr.height)
	return append(out, data[c.pos:]...), nil
}

// readLenientPPMNumber skips whitespace and comments, then reads a number
// the same way readPPMNumber does.
func readLenientPPMNumber(c *byteCursor, field string) (int, error) {
	for {
		b, ok := c.next()
		if !ok {
			return 0, errors.Wrapf(ErrUnexpectedEOF, "reached end of file before the %s in the header", field)
		}
		switch {
		case isSpace(b):
		case b == '#':
			if err := skipPPMComment(c); err != nil {
				return 0, err
			}
		case isDigit(b):
			return continuePPMNumber(c, field, int(b-'0'))
		default:
			return 0, errors.Wrapf(ErrMalformedHeader, "unexpected character %q before the %s", b, field)
		}
	}
}

func skipPPMComment(c *byteCursor) error {
	for {
		b, ok := c.next()
		if !ok {
			return errors.Wrap(ErrUnexpectedEOF, "reached end of file inside a header comment")
		}
		if b == '\n' || b == '\r' {
			return nil
		}
	}
}

// decodeRecovered runs decode over data and turns a panic inside it into an
// error.
func decodeRecovered(decode func(io.Reader) (image.Image, error), data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = errors.Wrapf(ErrMalformedHeader, "ppm reader panicked: %v", r)
		}
	}()
	return decode(bytes.NewReader(data))
}
