package rimage

import (
	"math"

	"github.com/pkg/errors"
)

const (
	ppmMagic      = 'P'
	ppmBinaryRGB  = '6'
	ppmMaxValue   = 255
	ppmNumberMax  = math.MaxInt32
	ppmHeaderText = "P6\n%d %d\n255\n"
)

// ppmHeader is the parsed header of a P6 file. It only lives for the
// duration of a decode.
type ppmHeader struct {
	width, height int
	maxValue      int
}

// readPPMHeader consumes "P6\n<width> <height>\n<max>\n" from c. There is
// no support for comments or for whitespace other than a single separator
// byte after each number.
func readPPMHeader(c *byteCursor) (ppmHeader, error) {
	var hdr ppmHeader

	b, ok := c.next()
	if !ok {
		return hdr, errors.Wrapf(ErrEmptyInput, "expected magic number %q, got end of input", ppmMagic)
	}
	if b != ppmMagic {
		return hdr, errors.Wrapf(ErrMagicMismatch, "expected header to start with %q, got %q", ppmMagic, b)
	}

	b, ok = c.next()
	if !ok {
		return hdr, errors.Wrap(ErrUnexpectedEOF, "reached end of file before the format marker")
	}
	if b != ppmBinaryRGB {
		return hdr, errors.Wrapf(ErrUnsupportedFormat, "expected a P6 file, got P%c", b)
	}

	b, ok = c.next()
	if !ok {
		return hdr, errors.Wrap(ErrUnexpectedEOF, "reached end of file with nothing after magic number P6")
	}
	if b != '\n' {
		return hdr, errors.Wrapf(ErrMalformedHeader, "expected newline after magic number P6, got %q", b)
	}

	var err error
	if hdr.width, err = readPPMNumber(c, "width"); err != nil {
		return hdr, err
	}
	if hdr.height, err = readPPMNumber(c, "height"); err != nil {
		return hdr, err
	}
	if hdr.maxValue, err = readPPMNumber(c, "max value"); err != nil {
		return hdr, err
	}
	if hdr.maxValue != ppmMaxValue {
		return hdr, errors.Wrapf(ErrUnsupportedMaxValue, "expected max value of %d, got %d", ppmMaxValue, hdr.maxValue)
	}
	return hdr, nil
}

// readPPMNumber reads decimal digits up to and including the first
// whitespace byte. The cursor cannot be rewound, so the terminator is
// consumed along with the number.
func readPPMNumber(c *byteCursor, field string) (int, error) {
	return continuePPMNumber(c, field, 0)
}

// continuePPMNumber is readPPMNumber for a token whose leading digits were
// already consumed and add up to number.
func continuePPMNumber(c *byteCursor, field string, number int) (int, error) {
	for {
		b, ok := c.next()
		if !ok {
			return 0, errors.Wrapf(ErrUnexpectedEOF, "reached end of file while reading the %s in the header", field)
		}
		switch {
		case isDigit(b):
			digit := int(b - '0')
			// Checked before multiplying so a 32-bit int cannot wrap.
			if number > (ppmNumberMax-digit)/10 {
				return 0, errors.Wrapf(ErrMalformedHeader, "%s is larger than %d", field, ppmNumberMax)
			}
			number = number*10 + digit
		case isSpace(b):
			return number, nil
		default:
			return 0, errors.Wrapf(ErrMalformedHeader, "unexpected character %q while reading the %s", b, field)
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
