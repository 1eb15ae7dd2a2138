// Package renderer provides a way to render script runs in different formats.
package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ChainSafe/keystack/analyzer"
	"github.com/ChainSafe/keystack/script"
)

// TextRenderer formats runs in a structured text format.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

type palette struct {
	title, ok, fail, warn *color.Color
}

// colors are only used when writing to the terminal
func newPalette(output io.Writer) palette {
	p := palette{
		title: color.New(color.Bold),
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
	}
	if output != os.Stdout {
		for _, c := range []*color.Color{p.title, p.ok, p.fail, p.warn} {
			c.DisableColor()
		}
	}
	return p
}

// RenderTranscript writes one line per step followed by the final contents
// of every stack.
func (r *TextRenderer) RenderTranscript(tr *script.Transcript, output io.Writer) error {
	p := newPalette(output)
	var report strings.Builder

	report.WriteString("==============================\n")
	report.WriteString(p.title.Sprintf("Script: %s\n", tr.Name))
	report.WriteString("==============================\n")

	for _, res := range tr.Results {
		step := fmt.Sprintf("%3d. %-9s %-8s", res.Index, res.Op, res.Stack)
		if res.Key != "" {
			step += " key=" + res.Key
		}
		switch {
		case res.Error != "":
			report.WriteString(fmt.Sprintf("%s -> %s\n", step, p.fail.Sprint(res.Error)))
		case res.Output != "":
			report.WriteString(fmt.Sprintf("%s -> %s\n", step, p.ok.Sprint(res.Output)))
		default:
			report.WriteString(step + "\n")
		}
	}

	report.WriteString("------------------------------\n")
	report.WriteString(p.title.Sprint("Final contents (most recent first)\n"))
	report.WriteString("------------------------------\n")
	for _, snap := range tr.Snapshots {
		pairs := make([]string, 0, len(snap.Entries))
		for _, e := range snap.Entries {
			pairs = append(pairs, e.Key+"="+e.Value)
		}
		report.WriteString(fmt.Sprintf("%s [%d]: %s\n", snap.Stack, len(snap.Entries), strings.Join(pairs, " ")))
	}

	_, err := output.Write([]byte(report.String()))
	return err
}

// RenderIssues writes a summary followed by every issue.
func (r *TextRenderer) RenderIssues(name string, issues []*analyzer.Issue, output io.Writer) error {
	p := newPalette(output)
	critical := 0
	for _, issue := range issues {
		if issue.Severity == analyzer.IssueSeverityCritical {
			critical++
		}
	}

	var report strings.Builder
	report.WriteString("==============================\n")
	report.WriteString(p.title.Sprintf("Verification: %s\n", name))
	report.WriteString("==============================\n")
	report.WriteString(fmt.Sprintf("Critical Issues: %d\n", critical))
	report.WriteString(fmt.Sprintf("Warnings: %d\n", len(issues)-critical))
	if len(issues) == 0 {
		report.WriteString(p.ok.Sprint("stack matches the reference model\n"))
	}

	for i, issue := range issues {
		sev := p.warn
		if issue.Severity == analyzer.IssueSeverityCritical {
			sev = p.fail
		}
		where := fmt.Sprintf("step %d (%s on %s)", issue.Step, issue.Op, issue.Stack)
		if issue.Step < 0 {
			where = "final contents of " + issue.Stack
		}
		report.WriteString(fmt.Sprintf("%d. [%s] %s: %s\n", i+1, sev.Sprint(issue.Severity), where, issue.Message))
		if issue.Expected != "" || issue.Actual != "" {
			report.WriteString(fmt.Sprintf("   - Expected: %s\n", issue.Expected))
			report.WriteString(fmt.Sprintf("   - Actual:   %s\n", issue.Actual))
		}
	}

	_, err := output.Write([]byte(report.String()))
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
