// Package stack provides Stack, an associative LIFO container.
//
// A Stack stores key/value pairs and keeps two orders at once: the order in
// which elements were pushed across all keys, and the order in which they
// were pushed under each key. Pop and Front work on the first order,
// PopKey and FrontKey on the second, all in constant time once the key's
// bucket is found in the ordered key index.
//
// # Sharing
//
// Clone is cheap: the clone and the original share storage until one of
// them is modified, at which point the writer takes a private copy. The
// copy is rebuilt by replaying the pushes from the oldest to the newest.
//
// FrontRef and FrontKeyRef hand out pointers into the storage. Because the
// stack cannot tell when such a pointer is dropped, a Clone taken after one
// of these calls copies eagerly. UpdateFront and UpdateFrontKey give the
// same access for the duration of a callback and do not have that cost.
//
// # Concurrency
//
// A Stack is not safe for concurrent use. Stacks that share storage may be
// used from different goroutines only if none of them is modified.
package stack
