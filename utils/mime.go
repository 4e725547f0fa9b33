package utils

import (
	"path/filepath"
	"strings"
)

const (
	// MimeTypePPM is the binary (P6) portable pixmap.
	MimeTypePPM = "image/x-portable-pixmap"

	// MimeTypePNG is regular pngs.
	MimeTypePNG = "image/png"

	// MimeTypeJPEG is regular jpgs.
	MimeTypeJPEG = "image/jpeg"

	// MimeTypeGIF is regular gifs. Only the first frame is used.
	MimeTypeGIF = "image/gif"

	// MimeTypeBMP is uncompressed windows bitmaps.
	MimeTypeBMP = "image/bmp"

	// MimeTypeTIFF is tiff images.
	MimeTypeTIFF = "image/tiff"

	// MimeTypeQOI is for .qoi "Quite OK Image" for lossless, fast encoding/decoding.
	MimeTypeQOI = "image/qoi"
)

// GzipExt is the suffix of gzip compressed files.
const GzipExt = ".gz"

var extToMimeType = map[string]string{
	".ppm":  MimeTypePPM,
	".pnm":  MimeTypePPM,
	".png":  MimeTypePNG,
	".jpg":  MimeTypeJPEG,
	".jpeg": MimeTypeJPEG,
	".gif":  MimeTypeGIF,
	".bmp":  MimeTypeBMP,
	".tif":  MimeTypeTIFF,
	".tiff": MimeTypeTIFF,
	".qoi":  MimeTypeQOI,
}

// IsGzipped reports whether fn names a gzip compressed file.
func IsGzipped(fn string) bool {
	return strings.HasSuffix(strings.ToLower(fn), GzipExt)
}

// MimeTypeFromPath returns the mime type of an image file based on its
// extension, ignoring a trailing ".gz". The second return is false for
// unknown extensions.
func MimeTypeFromPath(fn string) (string, bool) {
	fn = strings.ToLower(fn)
	fn = strings.TrimSuffix(fn, GzipExt)
	mimeType, ok := extToMimeType[filepath.Ext(fn)]
	return mimeType, ok
}

// SupportedImageExtensions returns every extension MimeTypeFromPath knows.
func SupportedImageExtensions() map[string]string {
	out := make(map[string]string, len(extToMimeType))
	for ext, mimeType := range extToMimeType {
		out[ext] = mimeType
	}
	return out
}
