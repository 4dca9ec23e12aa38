// chain.go — boundary-chain traversal helpers.
//
// A chain of N linked errors corresponds to exactly N-1 crossed
// asynchronous boundaries, most recent boundary first, oldest last. Links
// are appended at the tail as boundaries are crossed, so an already-linked
// error that crosses a further boundary keeps its earlier hops intact.
package laeh2

import (
	"errors"
)

// AsError extracts an *Error from err's unwrap chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Chain returns the boundary chain starting at e, most recent hop first.
// The slice is freshly allocated; the links themselves are shared.
func Chain(e *Error) []*Error {
	if e == nil {
		return nil
	}
	var out []*Error
	for p := e; p != nil; p = p.prev {
		out = append(out, p)
	}
	return out
}

// Boundaries reports the number of asynchronous boundaries e has crossed.
func Boundaries(e *Error) int {
	if e == nil {
		return 0
	}
	n := 0
	for p := e.prev; p != nil; p = p.prev {
		n++
	}
	return n
}

// linkTail appends origin at the end of e's chain. Each link is written
// exactly once; an error crossing its second boundary grows at the tail
// rather than overwriting the first hop.
func linkTail(e, origin *Error) {
	p := e
	for p.prev != nil {
		p = p.prev
	}
	p.prev = origin
}
