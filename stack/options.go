package stack

// Option configures a Stack.
type Option[V any] func(*options[V])

type options[V any] struct {
	copyValue func(V) V
}

// WithValueCopier sets the function used to copy values when a stack takes
// a private copy of shared storage. Without it values are copied by plain
// assignment, which is only a deep copy for values without references.
func WithValueCopier[V any](fn func(V) V) Option[V] {
	return func(o *options[V]) {
		o.copyValue = fn
	}
}
