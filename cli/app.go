// Package cli contains the ppm command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/ppm/logging"
)

const (
	generalFlagConfig   = "config"
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"

	infoFlagStats = "stats"

	convertFlagLenient = "lenient"
	convertFlagQuality = "quality"

	sizeFlagWidth  = "width"
	sizeFlagHeight = "height"

	resizeFlagFilter = "filter"

	circleFlagColor      = "color"
	circleFlagBackground = "background"
	circleFlagSmooth     = "smooth"
)

var app = &cli.App{
	Name:            "ppm",
	Usage:           "read, write and convert binary PPM (P6) images",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:    generalFlagLogLevel,
			Usage:   "one of debug, info, warn or error. Overrides the config file",
			EnvVars: []string{"PPM_LOG_LEVEL"},
		},
	},
	Before: BeforeAction,
	After:  AfterAction,
	Commands: []*cli.Command{
		{
			Name:      "info",
			Usage:     "print the size of a binary PPM file",
			ArgsUsage: "<file.ppm>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  infoFlagStats,
					Usage: "also print per channel mean, median, standard deviation and range",
				},
			},
			Action: InfoAction,
		},
		{
			Name:      "verify",
			Usage:     "check that a binary PPM file re-encodes to the same bytes",
			ArgsUsage: "<file.ppm>",
			Action:    VerifyAction,
		},
		{
			Name:      "convert",
			Usage:     "convert between image formats based on file extensions",
			ArgsUsage: "<in> <out>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  convertFlagLenient,
					Usage: "accept ppm input with free-form header whitespace",
				},
				&cli.IntFlag{
					Name:  convertFlagQuality,
					Usage: "jpeg quality from 1 to 100, defaults to the config value",
				},
			},
			Action: ConvertAction,
		},
		{
			Name:      "resize",
			Usage:     "scale an image. Leave width or height at 0 to keep the aspect ratio",
			ArgsUsage: "<in> <out>",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  sizeFlagWidth,
					Usage: "output width in pixels",
				},
				&cli.IntFlag{
					Name:  sizeFlagHeight,
					Usage: "output height in pixels",
				},
				&cli.StringFlag{
					Name:  resizeFlagFilter,
					Usage: "resampling filter, defaults to the config value",
				},
			},
			Action: ResizeAction,
		},
		{
			Name:      "circle",
			Usage:     "draw the ellipse inscribed in a blank image",
			ArgsUsage: "<out>",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  sizeFlagWidth,
					Value: 128,
					Usage: "image width in pixels",
				},
				&cli.IntFlag{
					Name:  sizeFlagHeight,
					Value: 72,
					Usage: "image height in pixels",
				},
				&cli.StringFlag{
					Name:  circleFlagColor,
					Usage: "ellipse color as #rrggbb, defaults to the config value",
				},
				&cli.StringFlag{
					Name:  circleFlagBackground,
					Usage: "background color as #rrggbb, defaults to the config value",
				},
				&cli.BoolFlag{
					Name:  circleFlagSmooth,
					Usage: "anti-alias the edge of the ellipse",
				},
			},
			Action: CircleAction,
		},
		{
			Name:   "formats",
			Usage:  "list the file extensions convert understands",
			Action: FormatsAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	app.Metadata = nil
	return app
}

// NewAppWithLogger is like NewApp but logs to logger instead of errOut. The
// log level flags still apply to it.
func NewAppWithLogger(out, errOut io.Writer, logger logging.Logger) *cli.App {
	NewApp(out, errOut)
	app.Metadata = map[string]interface{}{metadataLogger: logger}
	return app
}
