// Package main is the ppm command itself.
package main

import (
	"os"

	"go.viam.com/ppm/cli"
	"go.viam.com/ppm/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger := logging.NewBlankLogger("ppm")
		logger.AddAppender(logging.NewWriterAppender(os.Stderr))
		logger.Fatal(err)
	}
}
