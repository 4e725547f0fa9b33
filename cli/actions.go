package cli

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/ppm/config"
	"go.viam.com/ppm/logging"
	"go.viam.com/ppm/rimage"
	"go.viam.com/ppm/utils"
)

const (
	metadataConfig = "config"
	metadataLogger = "logger"
)

// BeforeAction loads the config and sets up logging for every command.
func BeforeAction(c *cli.Context) error {
	cfg := config.Default()
	if fn := c.String(generalFlagConfig); fn != "" {
		var err error
		if cfg, err = config.Read(fn); err != nil {
			return err
		}
	}

	level := *cfg.LogLevel
	if levelStr := c.String(generalFlagLogLevel); levelStr != "" {
		var err error
		if level, err = logging.LevelFromString(levelStr); err != nil {
			return err
		}
	}
	if c.Bool(generalFlagDebug) {
		level = logging.DEBUG
	}

	logger, ok := c.App.Metadata[metadataLogger].(logging.Logger)
	if !ok {
		logger = logging.NewBlankLogger(c.App.Name)
		logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	}
	logger.SetLevel(level)

	c.App.Metadata = map[string]interface{}{
		metadataConfig: cfg,
		metadataLogger: logger,
	}
	return nil
}

// AfterAction flushes the logger.
func AfterAction(c *cli.Context) error {
	if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
		goutils.UncheckedError(logger.Sync())
	}
	return nil
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metadataConfig].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return errors.Errorf("%s needs %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

// InfoAction prints the dimensions of a binary PPM file.
func InfoAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	fn := c.Args().First()
	img, err := rimage.ReadPPMFromFile(fn)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", fn)
	}
	loggerFrom(c).Debugw("decoded", "path", fn, "width", img.Width(), "height", img.Height())
	printf(c.App.Writer, "%s: %dx%d", fn, img.Width(), img.Height())
	if !c.Bool(infoFlagStats) {
		return nil
	}
	channels, err := rimage.Stats(img)
	if err != nil {
		return err
	}
	for _, ch := range channels {
		printf(c.App.Writer, "%s\tmean=%.2f median=%.2f stddev=%.2f min=%.0f max=%.0f",
			ch.Name, ch.Mean, ch.Median, ch.StdDev, ch.Min, ch.Max)
	}
	return nil
}

// VerifyAction decodes a binary PPM file and checks that encoding it again
// reproduces the file. Bytes after the pixels are reported but allowed.
func VerifyAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	fn := c.Args().First()
	data, err := utils.ReadFile(fn)
	if err != nil {
		return err
	}
	img, err := rimage.DecodePPM(data)
	if err != nil {
		return errors.Wrapf(err, "cannot decode %q", fn)
	}
	encoded := rimage.EncodePPMBytes(img)
	if !bytes.HasPrefix(data, encoded) {
		return errors.Errorf("%q decodes but does not re-encode to the same bytes", fn)
	}
	if trailing := len(data) - len(encoded); trailing > 0 {
		loggerFrom(c).Warnw("ignored bytes after the last pixel", "path", fn, "count", trailing)
	}
	printf(c.App.Writer, "%s: ok", fn)
	return nil
}

// ConvertAction converts an image to the format named by the output extension.
func ConvertAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	quality := configFrom(c).JPEGQuality
	if c.IsSet(convertFlagQuality) {
		quality = c.Int(convertFlagQuality)
		if quality < 1 || quality > 100 {
			return errors.Errorf("quality must be between 1 and 100, got %d", quality)
		}
	}
	mimeType, ok := utils.MimeTypeFromPath(out)
	if !ok {
		return errors.Errorf("don't know how to write %q", out)
	}

	img, err := readInput(in, c.Bool(convertFlagLenient))
	if err != nil {
		return err
	}
	data, err := rimage.EncodeImageWithQuality(c.Context, img, mimeType, quality)
	if err != nil {
		return err
	}
	if err := utils.WriteFile(out, data); err != nil {
		return err
	}
	loggerFrom(c).Infow("converted", "in", in, "out", out, "mime_type", mimeType, "bytes", len(data))
	return nil
}

func readInput(fn string, lenient bool) (*rimage.Image, error) {
	mimeType, _ := utils.MimeTypeFromPath(fn)
	if !lenient || mimeType != utils.MimeTypePPM {
		return rimage.ReadImageFromFile(fn)
	}
	data, err := utils.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return rimage.DecodeLenientPPM(data)
}

// ResizeAction scales an image.
func ResizeAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	filter := configFrom(c).ResizeFilter
	if c.IsSet(resizeFlagFilter) {
		filter = c.String(resizeFlagFilter)
	}
	img, err := rimage.ReadImageFromFile(in)
	if err != nil {
		return err
	}
	resized, err := rimage.Resize(img, c.Int(sizeFlagWidth), c.Int(sizeFlagHeight), filter)
	if err != nil {
		return err
	}
	if err := resized.WriteTo(out); err != nil {
		return err
	}
	loggerFrom(c).Infow("resized", "in", in, "out", out,
		"width", resized.Width(), "height", resized.Height(), "filter", filter)
	return nil
}

// CircleAction writes an image of the ellipse inscribed in a blank canvas.
func CircleAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	out := c.Args().First()
	width, height := c.Int(sizeFlagWidth), c.Int(sizeFlagHeight)
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid size %dx%d", width, height)
	}

	cfg := configFrom(c)
	fg, bg := cfg.Circle(), cfg.Fill()
	if c.IsSet(circleFlagColor) {
		var err error
		if fg, err = rimage.ParseHexColor(c.String(circleFlagColor)); err != nil {
			return err
		}
	}
	if c.IsSet(circleFlagBackground) {
		var err error
		if bg, err = rimage.ParseHexColor(c.String(circleFlagBackground)); err != nil {
			return err
		}
	}

	img := rimage.NewImageFilled(width, height, bg)
	if c.Bool(circleFlagSmooth) {
		img = rimage.DrawEllipse(img, image.Pt(width/2, height/2), float64(width)/2, float64(height)/2, fg)
	} else {
		img = img.Filter(rimage.CircleFilter(fg))
	}
	if err := img.WriteTo(out); err != nil {
		return err
	}
	loggerFrom(c).Infow("wrote circle", "out", out, "width", width, "height", height, "color", fg.Hex())
	return nil
}

// FormatsAction lists the supported file extensions and their mime types.
func FormatsAction(c *cli.Context) error {
	exts := utils.SupportedImageExtensions()
	names := lo.Keys(exts)
	sort.Strings(names)
	for _, ext := range names {
		printf(c.App.Writer, "%s\t%s", ext, exts[ext])
	}
	printf(c.App.Writer, "any of the above with a %s suffix is gzip compressed", utils.GzipExt)
	return nil
}
