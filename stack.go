// stack.go — origin capture for laeh2.
//
// Design goals:
//   - Accuracy: runtime.Callers + runtime.CallersFrames so inlined calls
//     resolve to real (file, line) pairs.
//   - One capture per boundary: Wrap records a single origin Stack at
//     construction; promotion records one at the raise site. Nothing is
//     captured on success paths.
//   - Bounded depth: exceptional paths stay cheap even under deep recursion.
package laeh2

import (
	"runtime"
)

// Frame is a single call site in an origin capture.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path as reported by the runtime
	Line     int     // line number
	Function string  // fully-qualified function name
}

// Stack is a raw origin capture, most recent call first. It is treated as
// immutable once published; renders never modify it.
type Stack []Frame

// defaultMaxDepth bounds capture work on exceptional paths while keeping
// enough context to locate a boundary.
const defaultMaxDepth = 64

// captureStackDefault captures a stack skipping 'skip' caller frames, with
// the default depth bound.
//
// Skip model for a typical chain:
//
//	Check → promote → captureStackDefault → captureStack → runtime.Callers
//
// captureStack adds +3 internally (runtime.Callers, captureStack,
// captureStackDefault); each intermediate helper adds +1 for itself, so the
// first recorded frame lands at the user-visible raise or wrap site.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' initial
// frames beyond the internal helpers. Returns nil when nothing was captured.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}
