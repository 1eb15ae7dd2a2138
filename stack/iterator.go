package stack

import "iter"

// KeyIterator is a forward cursor over the distinct keys of a Stack in
// ascending order. It remembers the key it is positioned on, so after the
// stack changes Next continues with the smallest key greater than it.
type KeyIterator[K, V any] struct {
	s   *Stack[K, V]
	key K
	end bool
}

// Begin returns an iterator positioned on the smallest key.
func (s *Stack[K, V]) Begin() KeyIterator[K, V] {
	b, ok := s.unit().index.Min()
	if !ok {
		return s.End()
	}
	return KeyIterator[K, V]{s: s, key: b.key}
}

// End returns the iterator positioned past the last key.
func (s *Stack[K, V]) End() KeyIterator[K, V] {
	return KeyIterator[K, V]{s: s, end: true}
}

// Valid reports whether the iterator is positioned on a key.
func (it *KeyIterator[K, V]) Valid() bool {
	return !it.end
}

// Key returns the current key. It panics at the end.
func (it *KeyIterator[K, V]) Key() K {
	if it.end {
		panic("stack: Key called on end iterator")
	}
	return it.key
}

// Next advances to the next greater key.
func (it *KeyIterator[K, V]) Next() {
	if it.end {
		return
	}
	cur := it.key
	it.end = true
	it.s.unit().index.AscendGreaterOrEqual(&bucket[K]{key: cur}, func(b *bucket[K]) bool {
		if it.s.compare(b.key, cur) == 0 {
			return true
		}
		it.key = b.key
		it.end = false
		return false
	})
}

// Equal reports whether both iterators walk the same stack and are at the
// same position.
func (it *KeyIterator[K, V]) Equal(other KeyIterator[K, V]) bool {
	if it.s != other.s || it.end != other.end {
		return false
	}
	return it.end || it.s.compare(it.key, other.key) == 0
}

// Keys ranges over the distinct keys in ascending order. The stack must not
// be modified during iteration.
func (s *Stack[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.unit().index.Ascend(func(b *bucket[K]) bool {
			return yield(b.key)
		})
	}
}
