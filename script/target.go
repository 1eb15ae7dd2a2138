package script

import (
	"cmp"
	"slices"

	"github.com/ChainSafe/keystack/stack"
	"github.com/ChainSafe/keystack/stack/stacktest"
)

// Entry is one key/value pair of a stack snapshot.
type Entry = stacktest.Entry[string, string]

// Target is a string keyed stack a script can drive.
type Target interface {
	Push(key, value string)
	Pop() error
	PopKey(key string) error
	Front() (string, string, error)
	FrontKey(key string) (string, error)
	SetFront(byKey bool, key, value string) error
	Len() int
	Count(key string) int
	Keys() []string
	Clear()
	Clone() Target
	Assign(src Target)
	Release()
	Entries() []Entry
}

type stackTarget struct {
	*stack.Stack[string, string]
}

// NewStackTarget returns a Target backed by a stack.Stack.
func NewStackTarget() Target {
	return stackTarget{stack.New[string, string]()}
}

func (t stackTarget) SetFront(byKey bool, key, value string) error {
	if byKey {
		ref, err := t.FrontKeyRef(key)
		if err != nil {
			return err
		}
		*ref = value
		return nil
	}
	_, ref, err := t.FrontRef()
	if err != nil {
		return err
	}
	*ref = value
	return nil
}

func (t stackTarget) Keys() []string {
	return slices.Collect(t.Stack.Keys())
}

func (t stackTarget) Clone() Target {
	return stackTarget{t.Stack.Clone()}
}

func (t stackTarget) Assign(src Target) {
	t.Stack.Assign(src.(stackTarget).Stack)
}

func (t stackTarget) Entries() []Entry {
	return stacktest.Snapshot(t.Stack)
}

type modelTarget struct {
	*stacktest.Model[string, string]
}

// NewModelTarget returns a Target backed by the naive reference model.
func NewModelTarget() Target {
	return &modelTarget{stacktest.NewModel[string, string](cmp.Compare[string])}
}

func (t *modelTarget) Clone() Target {
	return &modelTarget{t.Model.Clone()}
}

func (t *modelTarget) Assign(src Target) {
	t.Model = src.(*modelTarget).Model.Clone()
}

func (t *modelTarget) Release() {
	t.Model.Clear()
}
