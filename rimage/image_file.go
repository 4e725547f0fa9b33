package rimage

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"go.viam.com/ppm/utils"
)

// DefaultJPEGQuality is used by EncodeImage when no quality is given.
const DefaultJPEGQuality = 90

// ReadPPMFromFile reads a whole binary PPM file into memory and decodes it.
// Files ending in ".gz" are decompressed first.
func ReadPPMFromFile(fn string) (*Image, error) {
	data, err := utils.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return DecodePPM(data)
}

// WritePPMToFile writes img to fn as a binary PPM, replacing anything that
// was there. Files ending in ".gz" are compressed.
func WritePPMToFile(fn string, img *Image) error {
	return utils.WriteFile(fn, EncodePPMBytes(img))
}

// ReadImageFromFile reads an image, choosing the decoder from the extension.
func ReadImageFromFile(fn string) (*Image, error) {
	mimeType, ok := utils.MimeTypeFromPath(fn)
	if !ok {
		return nil, errors.Errorf("don't know how to read %q", fn)
	}
	data, err := utils.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return DecodeImage(context.Background(), data, mimeType)
}

// WriteImageToFile writes an image, choosing the encoder from the extension.
func WriteImageToFile(fn string, img image.Image) error {
	mimeType, ok := utils.MimeTypeFromPath(fn)
	if !ok {
		return errors.Errorf("don't know how to write %q", fn)
	}
	data, err := EncodeImage(context.Background(), img, mimeType)
	if err != nil {
		return err
	}
	return utils.WriteFile(fn, data)
}

// DecodeImage decodes image bytes of the given mime type.
func DecodeImage(ctx context.Context, data []byte, mimeType string) (*Image, error) {
	if mimeType == utils.MimeTypePPM {
		return DecodePPM(data)
	}

	var decode func(io.Reader) (image.Image, error)
	switch mimeType {
	case utils.MimeTypePNG:
		decode = png.Decode
	case utils.MimeTypeJPEG:
		decode = jpeg.Decode
	case utils.MimeTypeGIF:
		decode = gif.Decode
	case utils.MimeTypeBMP:
		decode = bmp.Decode
	case utils.MimeTypeTIFF:
		decode = tiff.Decode
	case utils.MimeTypeQOI:
		decode = qoi.Decode
	default:
		return nil, errors.Errorf("do not know how to decode %q", mimeType)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", mimeType)
	}
	return NewImageFromStdImage(img), nil
}

// EncodeImage encodes img in the given mime type.
func EncodeImage(ctx context.Context, img image.Image, mimeType string) ([]byte, error) {
	return EncodeImageWithQuality(ctx, img, mimeType, DefaultJPEGQuality)
}

// EncodeImageWithQuality is EncodeImage with an explicit jpeg quality, which
// is ignored by the other formats.
func EncodeImageWithQuality(ctx context.Context, img image.Image, mimeType string, jpegQuality int) ([]byte, error) {
	if mimeType == utils.MimeTypePPM {
		return EncodePPMBytes(NewImageFromStdImage(img)), nil
	}

	var buf bytes.Buffer
	var err error
	switch mimeType {
	case utils.MimeTypePNG:
		err = png.Encode(&buf, img)
	case utils.MimeTypeJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case utils.MimeTypeGIF:
		err = gif.Encode(&buf, img, nil)
	case utils.MimeTypeBMP:
		err = bmp.Encode(&buf, img)
	case utils.MimeTypeTIFF:
		err = tiff.Encode(&buf, img, nil)
	case utils.MimeTypeQOI:
		err = qoi.Encode(&buf, img)
	default:
		return nil, errors.Errorf("do not know how to encode %q", mimeType)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not encode %s", mimeType)
	}
	return buf.Bytes(), nil
}
