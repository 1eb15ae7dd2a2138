package renderer

import (
	"io"

	"github.com/ChainSafe/keystack/analyzer"
	"github.com/ChainSafe/keystack/script"
)

// Renderer defines the interface for rendering script runs in different formats.
type Renderer interface {
	// RenderTranscript writes the per step results and final stack contents of a run.
	RenderTranscript(tr *script.Transcript, output io.Writer) error

	// RenderIssues writes the findings of a verification run.
	RenderIssues(name string, issues []*analyzer.Issue, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the renderer for format.
func New(format string) (Renderer, bool) {
	switch format {
	case "", "text":
		return NewTextRenderer(), true
	case "json":
		return NewJSONRenderer(), true
	}
	return nil, false
}
