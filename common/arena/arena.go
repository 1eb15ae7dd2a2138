// Package arena implements an index-addressed object pool.
//
// Items live in fixed-size pages that are never moved once allocated, so a
// pointer returned by Get stays valid until the handle is freed. Freed
// handles are recycled through a free list.
package arena

import "math"

// Handle addresses one item in an Arena. The zero Handle is Nil.
type Handle int32

// Nil is the handle that addresses nothing.
const Nil Handle = 0

const (
	pageShift = 8
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
)

// Arena is a pool of T addressed by Handle. The zero value is empty and
// ready to use.
type Arena[T any] struct {
	pages [][]T
	free  []Handle
	next  Handle // next never-used handle, starts at 1
	live  int
}

// Alloc stores value and returns its handle.
func (a *Arena[T]) Alloc(value T) Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if a.next == Nil {
			a.next = 1
		}
		if a.next == math.MaxInt32 {
			panic("arena: full")
		}
		h = a.next
		a.next++
		if page := int(h) >> pageShift; page >= len(a.pages) {
			a.pages = append(a.pages, make([]T, pageSize))
		}
	}
	*a.Get(h) = value
	a.live++
	return h
}

// Get returns a pointer to the item addressed by h.
// h must have been returned by Alloc and not freed since.
func (a *Arena[T]) Get(h Handle) *T {
	return &a.pages[int(h)>>pageShift][int(h)&pageMask]
}

// Free releases h. The item is zeroed so it does not retain references.
func (a *Arena[T]) Free(h Handle) {
	var zero T
	*a.Get(h) = zero
	a.free = append(a.free, h)
	a.live--
}

// Len returns the number of live items.
func (a *Arena[T]) Len() int {
	return a.live
}

// Reset drops every item and every page.
func (a *Arena[T]) Reset() {
	*a = Arena[T]{}
}
