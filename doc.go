// doc.go — package documentation for laeh2
//
// Package laeh2 is lean asynchronous error handling: it lets callback code
// fail safely. Any panic raised inside a wrapped callback, and any truthy
// error-first argument passed into it, is captured, normalized into a
// structured *Error, linked to the call site that initiated the
// asynchronous operation, and delivered to a completion handler instead of
// crashing the process or being silently lost.
//
// # The Two Halves
//
// Wrap is the asynchronous-boundary wrapper. It captures an origin Stack at
// construction — the moment the asynchronous call is initiated — and
// returns a plain function to hand to the asynchronous API as its callback:
//
//	load := laeh2.Wrap(done, true, func(args ...any) {
//	    doc, err := parse(args[1].([]byte))
//	    laeh2.Check(err, "url", url)
//	    process(doc)
//	})
//	fetch(url, load)
//
// At invocation time the wrapper optionally Checks the error-first
// argument, runs the logic, recovers any panic, links the normalized
// *Error to the captured origin, and hands it to the completion handler.
// Errors never cross the boundary by panic; they travel exclusively
// through the handler.
//
// Check is the terse error-first guard: a no-op on falsy input, otherwise
// it promotes the value (string form as message, optional metadata
// attached) and raises it for the nearest boundary to recover.
//
// # Lean Stacks
//
// The Formatter renders a chained error as one compact line, one segment
// per crossed boundary, oldest boundary last:
//
//	empty body < {"url":"http://x"} ./fetch.go(17) << ./main.go(42)
//
// Frame locations are shortened (working directory → ".", module cache →
// "/$/"), engine frames are marked, frames that re-enter the same file
// coalesce into one entry, and — with hiding enabled — engine and library
// internals disappear entirely. Configure installs the process-wide
// renderer and returns it for chaining:
//
//	laeh2.Configure(true).MetaIndent("  ")
//
// Rendering is on demand: Error() stays the concise message, the full
// trace is Render() or %+v.
//
// # Failure Taxonomy
//
// Operation errors — a truthy error-first value, or a panic inside wrapped
// logic — are recovered locally and delivered; the library guarantees
// delivery, not handling. Programmer errors — nil callback logic, or no
// completion handler resolvable at delivery time — are deliberately fatal:
// continuing would hide a defect and leave callers waiting for completions
// that never arrive.
//
// # Interop
//
//   - Promoted Go errors keep their original value as the Unwrap cause, so
//     errors.Is/As traverse laeh2 boundaries.
//   - *Error implements fmt.Formatter (%v concise, %+v full trace, %q).
//   - The zlog subpackage adapts a completion handler onto a zerolog
//     logger for structured log sinks.
package laeh2
