package cmd

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/keystack/renderer"
	"github.com/ChainSafe/keystack/script"
)

func CreateRunCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Runs a script against a stack and reports every step",
		Description: "Runs a script against a stack and reports every step",
		ArgsUsage:   "<script.yaml>",
		Action:      action,
		Flags: []cli.Flag{
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var RunCommand = CreateRunCommand(RunScript)

func RunScript(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("script path is required")
	}
	s, err := script.Load(path)
	if err != nil {
		return fmt.Errorf("error loading script: %w", err)
	}

	logger := NewLogger(ctx)
	tr, err := script.NewRunner(script.NewStackTarget, script.WithLogger(logger)).Run(s)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	err = writeReport(ctx.String(FormatFlag.Name), ctx.Path(ReportOutputPathFlag.Name),
		func(r renderer.Renderer, w io.Writer) error {
			return r.RenderTranscript(tr, w)
		})
	if err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}
