// Package cmd defines all the commands for the cli
package cmd

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

var (
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: json, text",
		Required: false,
		Value:    "text",
		EnvVars:  []string{"KEYSTACK_FORMAT"},
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for report. Default: stdout",
		Required: false,
	}
	LogLevelFlag = &cli.StringFlag{
		Name:     "log-level",
		Usage:    "log level written to stderr. Options: trace, debug, info, warn, error, off",
		Required: false,
		Value:    "warn",
		EnvVars:  []string{"KEYSTACK_LOG_LEVEL"},
	}
)

// NewLogger builds the stderr logger selected by the log-level flag.
func NewLogger(ctx *cli.Context) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "keystack",
		Level:  hclog.LevelFromString(ctx.String(LogLevelFlag.Name)),
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})
}
