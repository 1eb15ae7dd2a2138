package script

import (
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Result records the outcome of one step.
type Result struct {
	Index  int    `json:"index"`
	Op     Op     `json:"op"`
	Stack  string `json:"stack"`
	Key    string `json:"key,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Snapshot is the content of one stack, most recent element first.
type Snapshot struct {
	Stack   string  `json:"stack"`
	Entries []Entry `json:"entries"`
}

// Transcript is everything a script run produced.
type Transcript struct {
	Name      string     `json:"name"`
	Results   []Result   `json:"results"`
	Snapshots []Snapshot `json:"snapshots"`
}

// Runner executes scripts against Targets.
type Runner struct {
	newTarget func() Target
	logger    hclog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger steps are reported to.
func WithLogger(logger hclog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner returns a runner creating its stacks with newTarget.
func NewRunner(newTarget func() Target, opts ...RunnerOption) *Runner {
	r := &Runner{
		newTarget: newTarget,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates and executes s. Scripts built in code go through Run
// without a separate Validate call; for scripts from Load the check is
// repeated. Failing operations are recorded in the transcript; only an
// invalid script makes Run fail.
func (r *Runner) Run(s *Script) (*Transcript, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid script")
	}
	logger := r.logger.With("script", s.Name)

	targets := map[string]Target{MainStack: r.newTarget()}
	for _, name := range s.Stacks {
		if _, ok := targets[name]; !ok {
			targets[name] = r.newTarget()
		}
	}

	tr := &Transcript{Name: s.Name}
	for i, step := range s.Steps {
		res := Result{
			Index: i,
			Op:    step.Op,
			Stack: step.Target(),
			Key:   step.KeyOrEmpty(),
		}
		out, err := apply(targets, step)
		res.Output = out
		if err != nil {
			res.Error = err.Error()
		}
		logger.Debug("step", "index", i, "op", step.Op, "stack", res.Stack, "key", res.Key,
			"output", out, "error", err)
		tr.Results = append(tr.Results, res)
	}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		tr.Snapshots = append(tr.Snapshots, Snapshot{Stack: name, Entries: targets[name].Entries()})
	}
	logger.Info("script finished", "steps", len(s.Steps), "stacks", len(names))
	return tr, nil
}

func apply(targets map[string]Target, step Step) (string, error) {
	t := targets[step.Target()]
	key := step.KeyOrEmpty()
	switch step.Op {
	case OpPush:
		t.Push(key, step.Value)
	case OpPop:
		if step.Key != nil {
			return "", t.PopKey(key)
		}
		return "", t.Pop()
	case OpFront:
		if step.Key != nil {
			return t.FrontKey(key)
		}
		k, v, err := t.Front()
		if err != nil {
			return "", err
		}
		return k + "=" + v, nil
	case OpSetFront:
		return "", t.SetFront(step.Key != nil, key, step.Value)
	case OpCount:
		return strconv.Itoa(t.Count(key)), nil
	case OpSize:
		return strconv.Itoa(t.Len()), nil
	case OpKeys:
		return strings.Join(t.Keys(), ","), nil
	case OpClear:
		t.Clear()
	case OpClone:
		targets[step.As] = t.Clone()
	case OpAssign:
		t.Assign(targets[step.From])
	case OpRelease:
		t.Release()
	}
	return "", nil
}
