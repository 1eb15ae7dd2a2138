// Package script loads and runs YAML scripts of stack operations.
package script

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// MainStack is the stack every script starts with.
const MainStack = "main"

// Op names a stack operation.
type Op string

const (
	OpPush     Op = "push"
	OpPop      Op = "pop"
	OpFront    Op = "front"
	OpSetFront Op = "set-front"
	OpCount    Op = "count"
	OpSize     Op = "size"
	OpKeys     Op = "keys"
	OpClear    Op = "clear"
	OpClone    Op = "clone"
	OpAssign   Op = "assign"
	OpRelease  Op = "release"
)

// Script is a named sequence of steps run against one or more stacks.
type Script struct {
	Name   string   `yaml:"name"`
	Stacks []string `yaml:"stacks,omitempty"`
	Steps  []Step   `yaml:"steps"`
}

// Step is one operation. Key is nil for the forms of pop and front that
// work on the whole stack.
type Step struct {
	Op    Op      `yaml:"op"`
	Stack string  `yaml:"stack,omitempty"`
	Key   *string `yaml:"key,omitempty"`
	Value string  `yaml:"value,omitempty"`
	As    string  `yaml:"as,omitempty"` // clone target
	From  string  `yaml:"from,omitempty"`
}

// Target returns the stack the step applies to.
func (s Step) Target() string {
	if s.Stack == "" {
		return MainStack
	}
	return s.Stack
}

// KeyOrEmpty returns the step key, or "" when there is none.
func (s Step) KeyOrEmpty() string {
	if s.Key == nil {
		return ""
	}
	return *s.Key
}

// Load reads a script from a YAML file and validates it.
func Load(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open script")
	}
	defer file.Close()

	var s Script
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrapf(err, "failed to parse script %s", filename)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid script %s", filename)
	}
	return &s, nil
}

// Validate reports every problem in the script at once.
func (s *Script) Validate() error {
	var errs error
	known := map[string]bool{MainStack: true}
	for _, name := range s.Stacks {
		if known[name] && name != MainStack {
			errs = multierr.Append(errs, errors.Errorf("stack %q declared twice", name))
		}
		known[name] = true
	}

	for i, step := range s.Steps {
		fail := func(format string, args ...any) {
			errs = multierr.Append(errs, errors.Errorf("step %d (%s): %s", i, step.Op, fmt.Sprintf(format, args...)))
		}
		if !known[step.Target()] {
			fail("unknown stack %q", step.Target())
		}
		switch step.Op {
		case OpPush:
			if step.Key == nil {
				fail("key is required")
			}
		case OpCount:
			if step.Key == nil {
				fail("key is required")
			}
		case OpClone:
			switch {
			case step.As == "":
				fail("as is required")
			case known[step.As]:
				fail("stack %q already exists", step.As)
			default:
				known[step.As] = true
			}
		case OpAssign:
			if !known[step.From] {
				fail("unknown source stack %q", step.From)
			}
		case OpPop, OpFront, OpSetFront, OpSize, OpKeys, OpClear, OpRelease:
		default:
			fail("unknown operation")
		}
	}
	return errs
}
