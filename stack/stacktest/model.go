// Package stacktest provides a naive reference model of stack.Stack used to
// check the real container.
package stacktest

import (
	"slices"

	"github.com/ChainSafe/keystack/stack"
)

// Entry is one pushed pair.
type Entry[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Model keeps every pushed pair in a single slice, oldest first, and
// answers every query by scanning it.
type Model[K comparable, V any] struct {
	entries []Entry[K, V]
	compare func(a, b K) int
}

// NewModel returns an empty model ordering keys with compare.
func NewModel[K comparable, V any](compare func(a, b K) int) *Model[K, V] {
	return &Model[K, V]{compare: compare}
}

// Push appends a pair.
func (m *Model[K, V]) Push(key K, value V) {
	m.entries = append(m.entries, Entry[K, V]{Key: key, Value: value})
}

// Pop removes the most recent pair.
func (m *Model[K, V]) Pop() error {
	if len(m.entries) == 0 {
		return stack.ErrEmpty
	}
	m.entries = m.entries[:len(m.entries)-1]
	return nil
}

func (m *Model[K, V]) last(key K) int {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Key == key {
			return i
		}
	}
	return -1
}

// PopKey removes the most recent pair of key.
func (m *Model[K, V]) PopKey(key K) error {
	i := m.last(key)
	if i < 0 {
		return stack.ErrUnknownKey
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return nil
}

// Front returns the most recent pair.
func (m *Model[K, V]) Front() (K, V, error) {
	if len(m.entries) == 0 {
		var (
			zk K
			zv V
		)
		return zk, zv, stack.ErrEmpty
	}
	e := m.entries[len(m.entries)-1]
	return e.Key, e.Value, nil
}

// FrontKey returns the most recent value of key.
func (m *Model[K, V]) FrontKey(key K) (V, error) {
	i := m.last(key)
	if i < 0 {
		var zero V
		return zero, stack.ErrUnknownKey
	}
	return m.entries[i].Value, nil
}

// SetFront overwrites the most recent value, or the most recent value of
// key when byKey is set.
func (m *Model[K, V]) SetFront(byKey bool, key K, value V) error {
	i := len(m.entries) - 1
	if byKey {
		i = m.last(key)
	}
	if i < 0 {
		if byKey {
			return stack.ErrUnknownKey
		}
		return stack.ErrEmpty
	}
	m.entries[i].Value = value
	return nil
}

// Len returns the number of pairs.
func (m *Model[K, V]) Len() int {
	return len(m.entries)
}

// Count returns the number of pairs pushed under key.
func (m *Model[K, V]) Count(key K) int {
	n := 0
	for _, e := range m.entries {
		if e.Key == key {
			n++
		}
	}
	return n
}

// Clear removes all pairs.
func (m *Model[K, V]) Clear() {
	m.entries = nil
}

// Keys returns the distinct keys in ascending order.
func (m *Model[K, V]) Keys() []K {
	var keys []K
	for _, e := range m.entries {
		if !slices.Contains(keys, e.Key) {
			keys = append(keys, e.Key)
		}
	}
	slices.SortFunc(keys, m.compare)
	return keys
}

// Entries returns the pairs from the most recently pushed to the oldest.
func (m *Model[K, V]) Entries() []Entry[K, V] {
	if len(m.entries) == 0 {
		return nil
	}
	out := slices.Clone(m.entries)
	slices.Reverse(out)
	return out
}

// Clone returns an independent copy.
func (m *Model[K, V]) Clone() *Model[K, V] {
	return &Model[K, V]{entries: slices.Clone(m.entries), compare: m.compare}
}

// Snapshot lists the pairs of s from the most recently pushed to the oldest.
func Snapshot[K comparable, V any](s *stack.Stack[K, V]) []Entry[K, V] {
	var out []Entry[K, V]
	for k, v := range s.All() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}
