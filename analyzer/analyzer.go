// Package analyzer checks scripts run against stack.Stack against the
// results of the naive reference model.
package analyzer

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/ChainSafe/keystack/script"
)

// IssueSeverity represents the severity level of an issue.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "CRITICAL"
	IssueSeverityWarning  IssueSeverity = "WARNING"
)

// Issue represents a single finding for one step of a script.
type Issue struct {
	Step     int           `json:"step"` // -1 for the final snapshots
	Op       script.Op     `json:"op,omitempty"`
	Stack    string        `json:"stack"`
	Message  string        `json:"message"`
	Severity IssueSeverity `json:"severity"`
	Expected string        `json:"expected,omitempty"`
	Actual   string        `json:"actual,omitempty"`
}

// Analyzer runs a script on the container and on the reference model.
type Analyzer struct {
	logger hclog.Logger
}

// NewAnalyzer returns an Analyzer logging to logger.
func NewAnalyzer(logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{logger: logger}
}

// Analyze returns one critical issue per divergence between the container
// and the model, and a warning for each step that fails on both.
func (a *Analyzer) Analyze(s *script.Script) ([]*Issue, error) {
	got, err := script.NewRunner(script.NewStackTarget, script.WithLogger(a.logger.Named("stack"))).Run(s)
	if err != nil {
		return nil, errors.Wrap(err, "running script on stack")
	}
	want, err := script.NewRunner(script.NewModelTarget, script.WithLogger(a.logger.Named("model"))).Run(s)
	if err != nil {
		return nil, errors.Wrap(err, "running script on model")
	}

	issues := make([]*Issue, 0)
	for i, res := range got.Results {
		exp := want.Results[i]
		switch {
		case res.Error != exp.Error:
			issues = append(issues, &Issue{
				Step:     i,
				Op:       res.Op,
				Stack:    res.Stack,
				Message:  "operation error differs from reference",
				Severity: IssueSeverityCritical,
				Expected: exp.Error,
				Actual:   res.Error,
			})
		case res.Output != exp.Output:
			issues = append(issues, &Issue{
				Step:     i,
				Op:       res.Op,
				Stack:    res.Stack,
				Message:  "operation output differs from reference",
				Severity: IssueSeverityCritical,
				Expected: exp.Output,
				Actual:   res.Output,
			})
		case res.Error != "":
			issues = append(issues, &Issue{
				Step:     i,
				Op:       res.Op,
				Stack:    res.Stack,
				Message:  fmt.Sprintf("operation fails: %s", res.Error),
				Severity: IssueSeverityWarning,
			})
		}
	}

	for i, snap := range got.Snapshots {
		exp := want.Snapshots[i]
		if !slices.Equal(snap.Entries, exp.Entries) {
			issues = append(issues, &Issue{
				Step:     -1,
				Stack:    snap.Stack,
				Message:  "final contents differ from reference",
				Severity: IssueSeverityCritical,
				Expected: fmt.Sprint(exp.Entries),
				Actual:   fmt.Sprint(snap.Entries),
			})
		}
	}
	a.logger.Debug("analysis done", "script", s.Name, "issues", len(issues))
	return issues, nil
}

// HasCritical reports whether any issue is critical.
func HasCritical(issues []*Issue) bool {
	return slices.ContainsFunc(issues, func(i *Issue) bool {
		return i.Severity == IssueSeverityCritical
	})
}
