// boundary.go — the asynchronous-boundary wrapper.
//
// Wrap is invoked at two distinct times it does not control: once when the
// asynchronous call is initiated (construction; the origin capture is taken
// here) and once when the operation completes (the returned function runs).
// Between those two points no state is held except the origin Stack and the
// completion handler reference.
//
// Failure policy:
//   - Operation errors (a truthy error-first argument, or a panic inside
//     the wrapped logic) are recovered locally, promoted to *Error, linked
//     to the origin, and delivered to the completion handler. They are
//     never re-raised past the boundary and never silently dropped.
//   - Programmer errors (nil callback logic; no resolvable completion
//     handler at delivery time) are deliberately fatal: swallowing them
//     would leave the caller waiting for a completion that never comes.
package laeh2

import (
	"errors"
)

// Handler is a completion handler: it receives the single *Error produced
// when the wrapped operation fails. Delivery is the end of the library's
// involvement; what happens next is the handler's business.
type Handler func(*Error)

// ErrNilLogic is the configuration error raised when Wrap is given nil
// callback logic. It fails construction, not invocation.
var ErrNilLogic = errors.New("laeh2: callback logic must be a function")

// Wrap builds a callback for an asynchronous API.
//
// h is the completion handler, or nil to resolve it at invocation time from
// the last call argument (accepted forms: Handler, func(*Error),
// func(error)). checkFirst treats the first invocation argument as an
// error-first convention value and passes it through Check before logic
// runs. logic is the code to execute on completion; it must be non-nil.
//
// The returned function captures the current call stack exactly once, now,
// anchoring "where was this asynchronous call initiated". Invoking it more
// than once is not deduplicated; that discipline belongs to the wrapped
// asynchronous API.
func Wrap(h Handler, checkFirst bool, logic func(args ...any)) func(args ...any) {
	if logic == nil {
		panic(ErrNilLogic)
	}
	origin := captureStackDefault(1)

	return func(args ...any) {
		eh := h
		if eh == nil {
			eh = handlerFrom(args)
		}
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			e := promote(r, 1)
			linkTail(e, &Error{stack: origin})
			if eh == nil {
				// No handler was supplied and none could be inferred.
				// Re-raise uncaught rather than strand the caller.
				panic(e)
			}
			eh(e)
		}()

		if checkFirst && len(args) > 0 {
			Check(args[0])
		}
		logic(args...)
	}
}

// handlerFrom adopts the last invocation argument as the completion handler
// when it has a recognized handler shape. This supports asynchronous
// signatures that end in a callback parameter the wrapped logic itself
// forwards.
func handlerFrom(args []any) Handler {
	if len(args) == 0 {
		return nil
	}
	switch t := args[len(args)-1].(type) {
	case Handler:
		return t
	case func(*Error):
		return t
	case func(error):
		return func(e *Error) { t(e) }
	default:
		return nil
	}
}
