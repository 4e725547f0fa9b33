// Package config defines the settings the ppm command line tool can read
// from a yaml file.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gopkg.in/yaml.v2"

	"go.viam.com/ppm/logging"
	"go.viam.com/ppm/rimage"
)

// Defaults used when a setting is missing from the file.
const (
	DefaultJPEGQuality  = rimage.DefaultJPEGQuality
	DefaultResizeFilter = "lanczos"
	DefaultFillColor    = "#ffffff"
	DefaultCircleColor  = "#00ffff"
)

// Config is the on-disk configuration of the command line tool. Every
// field is optional.
type Config struct {
	LogLevel     *logging.Level `yaml:"log_level"`
	JPEGQuality  int            `yaml:"jpeg_quality"`
	ResizeFilter string         `yaml:"resize_filter"`
	FillColor    string         `yaml:"fill_color"`
	CircleColor  string         `yaml:"circle_color"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.LogLevel == nil {
		level := logging.INFO
		cfg.LogLevel = &level
	}
	if cfg.JPEGQuality == 0 {
		cfg.JPEGQuality = DefaultJPEGQuality
	}
	if cfg.ResizeFilter == "" {
		cfg.ResizeFilter = DefaultResizeFilter
	}
	if cfg.FillColor == "" {
		cfg.FillColor = DefaultFillColor
	}
	if cfg.CircleColor == "" {
		cfg.CircleColor = DefaultCircleColor
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return utils.NewConfigValidationError(path, errors.Errorf("jpeg_quality must be between 1 and 100, got %d", cfg.JPEGQuality))
	}
	found := false
	for _, name := range rimage.ResampleFilterNames() {
		if name == cfg.ResizeFilter {
			found = true
			break
		}
	}
	if !found {
		return utils.NewConfigValidationError(path, errors.Errorf("unknown resize_filter %q", cfg.ResizeFilter))
	}
	if _, err := rimage.ParseHexColor(cfg.FillColor); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrap(err, "fill_color"))
	}
	if _, err := rimage.ParseHexColor(cfg.CircleColor); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrap(err, "circle_color"))
	}
	return nil
}

// Fill returns the parsed fill color. Only call after Validate succeeded.
func (cfg *Config) Fill() rimage.Color {
	c, err := rimage.ParseHexColor(cfg.FillColor)
	if err != nil {
		return rimage.White
	}
	return c
}

// Circle returns the parsed circle color. Only call after Validate succeeded.
func (cfg *Config) Circle() rimage.Color {
	c, err := rimage.ParseHexColor(cfg.CircleColor)
	if err != nil {
		return rimage.Cyan
	}
	return c
}

// Read reads a config from the given file.
func Read(filePath string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	return FromReader(filePath, f)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(originalPath); err != nil {
		return nil, err
	}
	return cfg, nil
}
