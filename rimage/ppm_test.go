package rimage

import (
	"bytes"
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lmittmann/ppm"
	"go.viam.com/test"
)

func ppmBytes(header string, pixels ...byte) []byte {
	return append([]byte(header), pixels...)
}

func randomImage(t *testing.T, r *rand.Rand, width, height int) *Image {
	t.Helper()
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := NewColor(uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)))
			test.That(t, img.SetXY(x, y, c), test.ShouldBeNil)
		}
	}
	return img
}

func TestDecodePPMLiteral(t *testing.T) {
	data := ppmBytes("P6\n2 1\n255\n", 255, 0, 0, 0, 255, 0)
	test.That(t, data, test.ShouldHaveLength, 17)

	img, err := DecodePPM(data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Width(), test.ShouldEqual, 2)
	test.That(t, img.Height(), test.ShouldEqual, 1)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, Red)
	test.That(t, img.GetXY(1, 0), test.ShouldResemble, Green)

	test.That(t, EncodePPMBytes(img), test.ShouldResemble, data)
}

func TestDecodePPMRowMajor(t *testing.T) {
	data := ppmBytes("P6\n2 2\n255\n",
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12)
	img, err := DecodePPM(data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(1, 2, 3))
	test.That(t, img.GetXY(1, 0), test.ShouldResemble, NewColor(4, 5, 6))
	test.That(t, img.GetXY(0, 1), test.ShouldResemble, NewColor(7, 8, 9))
	test.That(t, img.GetXY(1, 1), test.ShouldResemble, NewColor(10, 11, 12))
}

func TestDecodePPMHeaderErrors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		data     []byte
		expected error
		contains string
	}{
		{"empty", nil, ErrEmptyInput, "expected magic number 'P', got end of input: empty input"},
		{"zero length", []byte{}, ErrEmptyInput, "empty input"},
		{"wrong magic", []byte("Q6\n1 1\n255\n"), ErrMagicMismatch, "'Q'"},
		{"only magic", []byte("P"), ErrUnexpectedEOF, "format marker"},
		{"plain ppm", []byte("P3\n1 1\n255\n"), ErrUnsupportedFormat, "P3"},
		{"pam", []byte("P7\n"), ErrUnsupportedFormat, "P7"},
		{"no newline data", []byte("P6"), ErrUnexpectedEOF, "nothing after magic number"},
		{"space after magic", []byte("P6 1 1\n255\n"), ErrMalformedHeader, "newline after magic number"},
		{"comment", []byte("P6\n# made by hand\n1 1\n255\n"), ErrMalformedHeader, "'#'"},
		{"letter in width", []byte("P6\n1x 1\n255\n"), ErrMalformedHeader, "width"},
		{"letter in height", []byte("P6\n1 y\n255\n"), ErrMalformedHeader, "height"},
		{"negative", []byte("P6\n-1 1\n255\n"), ErrMalformedHeader, "width"},
		{"huge width", []byte("P6\n99999999999 1\n255\n"), ErrMalformedHeader, "width is larger"},
		{"width wraps 32 bits", []byte("P6\n4294967297 1\n255\n\x01\x02\x03"), ErrMalformedHeader, "width is larger"},
		{"height one past max", []byte("P6\n1 2147483648\n255\n"), ErrMalformedHeader, "height is larger"},
		{"eof in width", []byte("P6\n12"), ErrUnexpectedEOF, "width"},
		{"eof in height", []byte("P6\n1 2"), ErrUnexpectedEOF, "height"},
		{"eof in max value", []byte("P6\n1 2\n25"), ErrUnexpectedEOF, "max value"},
		{"max value 254", []byte("P6\n2 2\n254\n"), ErrUnsupportedMaxValue, "got 254"},
		{"max value 65535", []byte("P6\n2 2\n65535\n"), ErrUnsupportedMaxValue, "got 65535"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img, err := DecodePPM(tc.data)
			test.That(t, img, test.ShouldBeNil)
			test.That(t, errors.Is(err, tc.expected), test.ShouldBeTrue)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.contains)
		})
	}
}

func TestDecodePPMErrorsAreDistinct(t *testing.T) {
	_, err := DecodePPM(nil)
	test.That(t, errors.Is(err, ErrUnexpectedEOF), test.ShouldBeFalse)

	_, err = DecodePPM([]byte("P6\n1 1\n255\n"))
	test.That(t, errors.Is(err, ErrEmptyInput), test.ShouldBeFalse)
	test.That(t, errors.Is(err, ErrUnexpectedEOF), test.ShouldBeTrue)
}

func TestDecodePPMTruncated(t *testing.T) {
	header := "P6\n2 2\n255\n"
	for n := 0; n < 12; n++ {
		pixels := make([]byte, n)
		img, err := DecodePPM(ppmBytes(header, pixels...))
		test.That(t, img, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrUnexpectedEOF), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, ppmChannelNames[n%3])
	}
}

func TestReadPPMColor(t *testing.T) {
	for channel, name := range ppmChannelNames {
		c := newByteCursor(make([]byte, channel))
		_, err := readPPMColor(c)
		test.That(t, errors.Is(err, ErrUnexpectedEOF), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "next "+name+" value")
	}

	c := newByteCursor([]byte{9, 8, 7, 6})
	col, err := readPPMColor(c)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, col, test.ShouldResemble, NewColor(9, 8, 7))
	test.That(t, c.remaining(), test.ShouldEqual, 1)
}

func TestDecodePPMTrailingData(t *testing.T) {
	data := ppmBytes("P6\n1 1\n255\n", 10, 20, 30, 40, 50, 60, 'P', '6')
	img, err := DecodePPM(data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Width(), test.ShouldEqual, 1)
	test.That(t, img.Height(), test.ShouldEqual, 1)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(10, 20, 30))
}

func TestDecodePPMZeroSize(t *testing.T) {
	img, err := DecodePPM([]byte("P6\n0 3\n255\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Width(), test.ShouldEqual, 0)
	test.That(t, img.Height(), test.ShouldEqual, 3)
	test.That(t, img.Pixels(), test.ShouldBeEmpty)
	test.That(t, string(EncodePPMBytes(img)), test.ShouldEqual, "P6\n0 3\n255\n")
}

func TestDecodePPMSeparators(t *testing.T) {
	// Any single whitespace byte ends a number.
	img, err := DecodePPM(ppmBytes("P6\n1\t1\r255 ", 1, 2, 3))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, NewColor(1, 2, 3))

	// A doubled separator reads as an empty number and shifts the fields.
	_, err = DecodePPM([]byte("P6\n1  1\n255\n"))
	test.That(t, errors.Is(err, ErrUnsupportedMaxValue), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "got 1")
}

func TestReadPPMNumber(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected int
	}{
		{"0 ", 0},
		{" ", 0},
		{"9\n", 9},
		{"10 ", 10},
		{"1234567890\n", 1234567890},
		{"007 ", 7},
		{"2147483647 ", 2147483647},
	} {
		c := newByteCursor([]byte(tc.in))
		n, err := readPPMNumber(c, "width")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, n, test.ShouldEqual, tc.expected)
		test.That(t, c.remaining(), test.ShouldEqual, 0)
	}

	// These wrap to small positive values in 32-bit arithmetic.
	for _, in := range []string{"2147483648 ", "4294967297 ", "9999999999 ", "18446744073709551617 "} {
		n, err := readPPMNumber(newByteCursor([]byte(in)), "width")
		test.That(t, n, test.ShouldEqual, 0)
		test.That(t, errors.Is(err, ErrMalformedHeader), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "width is larger than 2147483647")
	}
}

func TestByteCursor(t *testing.T) {
	c := newByteCursor([]byte("ab"))
	test.That(t, c.remaining(), test.ShouldEqual, 2)
	b, ok := c.next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, b, test.ShouldEqual, byte('a'))
	b, ok = c.next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, b, test.ShouldEqual, byte('b'))
	for i := 0; i < 3; i++ {
		_, ok = c.next()
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, c.remaining(), test.ShouldEqual, 0)
	}
}

func TestEncodePPMHeader(t *testing.T) {
	img := NewImageFilled(10, 9, Magenta)
	data := EncodePPMBytes(img)
	header := "P6\n10 9\n255\n"
	test.That(t, string(data[:len(header)]), test.ShouldEqual, header)
	test.That(t, data, test.ShouldHaveLength, len(header)+10*9*3)
	test.That(t, data[len(header):len(header)+3], test.ShouldResemble, []byte{255, 0, 255})

	var buf bytes.Buffer
	test.That(t, EncodePPM(&buf, img), test.ShouldBeNil)
	test.That(t, buf.Bytes(), test.ShouldResemble, data)
}

func TestPPMRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, size := range []image.Point{{1, 1}, {2, 3}, {9, 9}, {10, 1}, {1, 10}, {19, 90}, {128, 72}} {
		img := randomImage(t, r, size.X, size.Y)
		data := EncodePPMBytes(img)

		decoded, err := DecodePPM(data)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, decoded.Bounds(), test.ShouldResemble, img.Bounds())
		if diff := cmp.Diff(img.Pixels(), decoded.Pixels()); diff != "" {
			t.Fatalf("%v pixels differ (-want +got):\n%s", size, diff)
		}
		test.That(t, EncodePPMBytes(decoded), test.ShouldResemble, data)
	}
}

func TestPPMMatchesReferenceCodec(t *testing.T) {
	img := randomImage(t, rand.New(rand.NewSource(7)), 13, 11)

	decoded, err := ppm.Decode(bytes.NewReader(EncodePPMBytes(img)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded.Bounds(), test.ShouldResemble, img.Bounds())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			test.That(t, NewColorFromColor(decoded.At(x, y)), test.ShouldResemble, img.GetXY(x, y))
		}
	}
}
