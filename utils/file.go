package utils

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ReadFile reads the whole file into memory, gunzipping it first when the
// name ends in ".gz".
func ReadFile(fn string) ([]byte, error) {
	data, err := os.ReadFile(fn) //nolint:gosec
	if err != nil {
		return nil, err
	}
	if !IsGzipped(fn) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open gzip stream in %q", fn)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "cannot gunzip %q", fn), zr.Close())
	}
	return out, zr.Close()
}

// WriteFile creates or truncates fn and writes data to it, gzipping it when
// the name ends in ".gz".
func WriteFile(fn string, data []byte) (err error) {
	//nolint:gosec
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	if !IsGzipped(fn) {
		_, err = f.Write(data)
		return err
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		return multierr.Combine(err, zw.Close())
	}
	return zw.Close()
}
