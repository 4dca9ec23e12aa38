// integration_test.go — end-to-end scenarios across Check, Wrap, and the
// lean renderer.
package laeh2

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testFileFormatter pins the workdir to this file's directory so captured
// frames shorten to "./<file>_test.go" regardless of the test cwd.
func testFileFormatter(t *testing.T, hide bool) *Formatter {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return NewFormatter(hide).Workdir(filepath.Dir(thisFile))
}

func TestEndToEnd_SingleBoundaryRenderShape(t *testing.T) {
	t.Parallel()

	f := testFileFormatter(t, true)

	var got *Error
	cb := Wrap(func(e *Error) { got = e }, true, func(args ...any) {})
	cb("x")

	require.NotNil(t, got)
	require.Equal(t, 1, Boundaries(got))

	out := f.Render(got)
	require.Equal(t, 1, strings.Count(out, f.boundarySep),
		"one crossed boundary, one boundary separator: %q", out)

	// x < ./integration_test.go(<invoke line>) << ./integration_test.go(<wrap line>)
	shape := regexp.MustCompile(`^x < \./integration_test\.go\(\d+\) << \./integration_test\.go\(\d+\)$`)
	require.Regexp(t, shape, out)
}

func TestEndToEnd_TwoBoundariesOldestLast(t *testing.T) {
	t.Parallel()

	f := testFileFormatter(t, true)

	var got *Error
	final := Handler(func(e *Error) { got = e })

	// Outer boundary: receives the inner failure as its error-first
	// argument and re-raises it through Check.
	_, _, here, _ := runtime.Caller(0)
	outer := Wrap(final, true, func(args ...any) {})
	outerLine := here + 1

	// Inner boundary: its logic fails synchronously; its completion path
	// leads into the outer wrapper.
	inner := Wrap(func(e *Error) { outer(e) }, false, func(args ...any) {
		Check("x")
	})

	inner()

	require.NotNil(t, got)
	require.Equal(t, 2, Boundaries(got))

	out := f.Render(got)
	require.Equal(t, 2, strings.Count(out, f.boundarySep),
		"two crossed boundaries, two separators: %q", out)

	segments := strings.Split(out, f.boundarySep)
	require.Len(t, segments, 3)
	require.True(t, strings.HasPrefix(segments[0], "x < "), "raise-site segment first: %q", out)

	// The outer wrap happened first in time, so its origin renders last.
	last := Chain(got)[2]
	require.Equal(t, segments[2], f.Render(last))
	require.Equal(t, outerLine, last.Origin()[0].Line)
}

func TestEndToEnd_DeliveredErrorIsStableAcrossRenders(t *testing.T) {
	t.Parallel()

	f := testFileFormatter(t, true)

	var got *Error
	cb := Wrap(func(e *Error) { got = e }, false, func(args ...any) {
		Check("boom", "op", "load")
	})
	cb()

	require.NotNil(t, got)
	first := f.Render(got)
	second := f.Render(got)
	require.Equal(t, first, second)
	require.Contains(t, first, `{"op":"load"} `)
}

func TestEndToEnd_MetadataRendersBeforeFrames(t *testing.T) {
	t.Parallel()

	f := testFileFormatter(t, true)

	var got *Error
	cb := Wrap(func(e *Error) { got = e }, true, func(args ...any) {})
	cb(New("x", map[string]any{"a": 1}))

	out := f.Render(got)
	shape := regexp.MustCompile(`^x < \{"a":1\} \./integration_test\.go\(\d+\)`)
	require.Regexp(t, shape, out)
}

func TestEndToEnd_HidingLeavesOnlyProjectFrames(t *testing.T) {
	t.Parallel()

	f := testFileFormatter(t, true)

	var got *Error
	cb := Wrap(func(e *Error) { got = e }, false, func(args ...any) {
		Check("boom")
	})
	cb()

	out := f.Render(got)
	for _, seg := range strings.Split(out, f.boundarySep) {
		for _, entry := range strings.Split(seg, f.frameSep) {
			if entry == "boom" {
				continue
			}
			require.Truef(t, strings.HasPrefix(entry, ".") || strings.HasPrefix(entry, "/"),
				"hidden render leaked a non-path entry %q in %q", entry, out)
			require.NotContains(t, entry, "boundary.go", "library frames must be hidden")
			require.NotContains(t, entry, "check.go", "library frames must be hidden")
		}
	}
}

func TestEndToEnd_SuccessPathDeliversNothing(t *testing.T) {
	t.Parallel()

	delivered := false
	ran := false
	cb := Wrap(func(e *Error) { delivered = true }, true, func(args ...any) {
		ran = true
	})
	cb(nil, []byte("payload"))

	require.True(t, ran)
	require.False(t, delivered)
}
