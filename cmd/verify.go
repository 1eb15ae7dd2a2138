package cmd

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/keystack/analyzer"
	"github.com/ChainSafe/keystack/renderer"
	"github.com/ChainSafe/keystack/script"
)

func CreateVerifyCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "verify",
		Usage:       "Checks a script run against the reference model",
		Description: "Runs a script on the stack and on a naive reference model and reports every divergence",
		ArgsUsage:   "<script.yaml>...",
		Action:      action,
		Flags: []cli.Flag{
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var VerifyCommand = CreateVerifyCommand(VerifyScripts)

// VerifyScripts reports issues for every script given and fails when any
// of them has a critical issue.
func VerifyScripts(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("at least one script path is required")
	}

	logger := NewLogger(ctx)
	a := analyzer.NewAnalyzer(logger)

	type report struct {
		name   string
		issues []*analyzer.Issue
	}
	reports := make([]report, 0, ctx.NArg())
	critical := 0
	for _, path := range ctx.Args().Slice() {
		s, err := script.Load(path)
		if err != nil {
			return fmt.Errorf("error loading script: %w", err)
		}
		issues, err := a.Analyze(s)
		if err != nil {
			return fmt.Errorf("analysis of %s failed: %w", path, err)
		}
		if analyzer.HasCritical(issues) {
			critical++
		}
		name := s.Name
		if name == "" {
			name = path
		}
		reports = append(reports, report{name: name, issues: issues})
	}

	err := writeReport(ctx.String(FormatFlag.Name), ctx.Path(ReportOutputPathFlag.Name),
		func(r renderer.Renderer, w io.Writer) error {
			for _, rep := range reports {
				if err := r.RenderIssues(rep.name, rep.issues, w); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	if critical > 0 {
		return fmt.Errorf("%d script(s) diverge from the reference model", critical)
	}
	return nil
}
