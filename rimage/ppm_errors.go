package rimage

import "github.com/pkg/errors"

var (
	// ErrEmptyInput is returned when there are no bytes at all where the
	// magic number was expected.
	ErrEmptyInput = errors.New("empty input")

	// ErrMagicMismatch is returned when the input does not start with 'P'.
	// It usually means the input is not a Netpbm file at all.
	ErrMagicMismatch = errors.New("wrong magic value")

	// ErrUnsupportedFormat is returned for Netpbm variants other than P6.
	ErrUnsupportedFormat = errors.New("not a P6 (binary PPM) file")

	// ErrMalformedHeader is returned when a header separator or number
	// contains a byte that is not allowed there.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnsupportedMaxValue is returned when the maximum channel value is
	// anything other than 255.
	ErrUnsupportedMaxValue = errors.New("unsupported max value")

	// ErrUnexpectedEOF is returned when the input ends while a header byte or
	// a pixel channel is still expected.
	ErrUnexpectedEOF = errors.New("unexpected end of file")
)
