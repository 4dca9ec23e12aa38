// format.go — the lean stack renderer for laeh2.
//
// Rendering composes possibly-chained origin captures (one per crossed
// asynchronous boundary) into one compact line:
//
//	message < {"meta":1} ./handler.go(42 < 57) < ./main.go(12) << ./main.go(9)
//
// Frames are rendered lean on purpose — no "Error:" prefixes, no repeated
// file paths — so the output stores compactly in logs and structured
// telemetry. The separators are configurable so consumers that split on
// newlines (templated error pages, log shippers) keep working.
//
// Shortening rules:
//   - the working-directory prefix becomes "."
//   - the module-cache segment "/pkg/mod/" becomes "/$/"
//   - GOROOT-resolved files become a "go:" token, which the hiding rule
//     treats as engine-internal
package laeh2

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Rendering defaults. The separators are load-bearing for downstream
// parsers; change them only at process startup.
const (
	DefaultFrameSeparator    = " < "
	DefaultBoundarySeparator = " << "
)

const (
	depDirLiteral = "/pkg/mod/"
	depDirToken   = "/$/"
	gorootToken   = "go:"

	markerDynamic = "E" // frame from dynamically materialized code
	markerNative  = "N" // engine frame (no file info, or GOROOT-resolved)

	autogeneratedFile = "<autogenerated>"
)

// substitution is one ordered path-shortening rule.
type substitution struct {
	old string
	new string
}

// Formatter renders *Error values into lean multi-boundary traces. A
// Formatter is configured once and then treated as read-only; renders never
// modify it.
type Formatter struct {
	hide        bool
	metaIndent  string
	frameSep    string
	boundarySep string
	workDir     string
	goroot      string
	subs        []substitution
}

// libDir locates this package's own source directory so hiding can drop the
// library's frames from rendered output (test files excluded, so the
// library remains observable from its own tests).
var libDir = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}()

// NewFormatter builds an explicit Formatter with the default separators,
// the process working directory, and the module-cache substitution. Use
// this (rather than Configure) when you want to pass the formatter around
// instead of sharing process-wide state.
func NewFormatter(hide bool) *Formatter {
	wd, _ := os.Getwd()
	return &Formatter{
		hide:        hide,
		frameSep:    DefaultFrameSeparator,
		boundarySep: DefaultBoundarySeparator,
		workDir:     strings.TrimSuffix(wd, "/"),
		goroot:      runtime.GOROOT(),
		subs:        []substitution{{depDirLiteral, depDirToken}},
	}
}

// defaultFormatter is process-wide state read by every Render and %+v.
// Install it once at startup via Configure; concurrent installers are not
// arbitrated (last write wins) and the value is treated as immutable after
// configuration by convention, not enforcement.
var defaultFormatter = NewFormatter(false)

// Configure installs a fresh process-wide Formatter and returns it for
// chaining further configuration calls:
//
//	laeh2.Configure(true).MetaIndent("  ").Separators(" < ", " << ")
func Configure(hide bool) *Formatter {
	f := NewFormatter(hide)
	defaultFormatter = f
	return f
}

// Default returns the installed process-wide Formatter.
func Default() *Formatter { return defaultFormatter }

// MetaIndent sets the pretty-printing indent for metadata serialization.
// Empty means inline. Returns the receiver for chaining.
func (f *Formatter) MetaIndent(indent string) *Formatter {
	f.metaIndent = indent
	return f
}

// Separators sets the frame and boundary separators. Returns the receiver
// for chaining.
func (f *Formatter) Separators(frame, boundary string) *Formatter {
	f.frameSep = frame
	f.boundarySep = boundary
	return f
}

// Workdir overrides the working-directory prefix stripped from frame
// locations. Returns the receiver for chaining.
func (f *Formatter) Workdir(dir string) *Formatter {
	f.workDir = strings.TrimSuffix(dir, "/")
	return f
}

// Replace appends a path substitution applied to every frame location after
// the workdir prefix is stripped. Returns the receiver for chaining.
func (f *Formatter) Replace(old, new string) *Formatter {
	f.subs = append(f.subs, substitution{old, new})
	return f
}

// Render produces the full multi-boundary trace for e: one segment per
// chain link, joined by the boundary separator, raise-site segment first
// and oldest boundary last. Rendering is read-only and idempotent under an
// unchanged configuration.
func (f *Formatter) Render(e *Error) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for p := e; p != nil; p = p.prev {
		if p != e {
			b.WriteString(f.boundarySep)
		}
		f.renderSegment(&b, p)
	}
	return b.String()
}

// renderSegment writes one boundary segment: message, separator, optional
// metadata JSON plus one space, then the coalesced frame list. Origin links
// have an empty message and render as their frame list alone.
func (f *Formatter) renderSegment(b *strings.Builder, e *Error) {
	b.WriteString(e.msg)

	frames := f.frameList(e.stack)
	meta := ""
	if e.meta != nil {
		meta = f.renderMeta(e.meta)
	}
	if meta == "" && len(frames) == 0 {
		return
	}
	if e.msg != "" {
		b.WriteString(f.frameSep)
	}
	if meta != "" {
		b.WriteString(meta)
		b.WriteByte(' ')
	}
	for i, fr := range frames {
		if i > 0 {
			b.WriteString(f.frameSep)
		}
		b.WriteString(fr)
	}
}

// frameEntry is one rendered frame under construction: a shortened
// location and the line indicators coalesced into it.
type frameEntry struct {
	loc   string
	lines []string
}

// frameList shortens, filters, and coalesces the raw capture into rendered
// entries of the form "loc(line[ < line2...])".
func (f *Formatter) frameList(stk Stack) []string {
	var entries []frameEntry
	for _, fr := range stk {
		loc := f.shorten(fr.File)
		if loc == "" {
			loc = "?"
		}
		if f.hide && !f.visible(loc, fr.File) {
			continue
		}
		tok := f.lineToken(fr)
		if n := len(entries); n > 0 && entries[n-1].loc == loc {
			// Re-entry into the same file: extend the previous entry.
			entries[n-1].lines = append(entries[n-1].lines, tok)
			continue
		}
		entries = append(entries, frameEntry{loc: loc, lines: []string{tok}})
	}
	out := make([]string, len(entries))
	for i, en := range entries {
		out[i] = en.loc + "(" + strings.Join(en.lines, f.frameSep) + ")"
	}
	return out
}

// visible applies the hiding rule: keep only frames whose shortened
// location starts with a path marker, and never the library's own frames.
func (f *Formatter) visible(loc, rawFile string) bool {
	if !strings.HasPrefix(loc, ".") && !strings.HasPrefix(loc, "/") {
		return false
	}
	return !isLibFile(rawFile)
}

// isLibFile reports whether file is one of this package's own sources.
// Subdirectories (adapter packages) and test files do not count.
func isLibFile(file string) bool {
	if libDir == "" || !strings.HasPrefix(file, libDir+"/") {
		return false
	}
	rest := file[len(libDir)+1:]
	return !strings.Contains(rest, "/") && !strings.HasSuffix(rest, "_test.go")
}

// lineToken renders the line indicator: the line number, the dynamic-code
// marker, and the native marker, in that order.
func (f *Formatter) lineToken(fr Frame) string {
	tok := strconv.Itoa(fr.Line)
	if fr.File == autogeneratedFile {
		tok += markerDynamic
	}
	if f.isNative(fr) {
		tok += markerNative
	}
	return tok
}

// isNative reports whether the frame belongs to the engine rather than to
// user or dependency code.
func (f *Formatter) isNative(fr Frame) bool {
	if fr.File == "" {
		return true
	}
	return f.goroot != "" && strings.HasPrefix(fr.File, f.goroot+"/")
}

// shorten maps an absolute runtime file path onto its compact rendered
// location.
func (f *Formatter) shorten(file string) string {
	if file == "" {
		return ""
	}
	if f.goroot != "" {
		if rest, ok := strings.CutPrefix(file, f.goroot+"/"); ok {
			return gorootToken + rest
		}
	}
	if f.workDir != "" {
		if file == f.workDir {
			file = "."
		} else if rest, ok := strings.CutPrefix(file, f.workDir+"/"); ok {
			file = "./" + rest
		}
	}
	for _, s := range f.subs {
		file = strings.ReplaceAll(file, s.old, s.new)
	}
	return file
}

// renderMeta serializes metadata as JSON, pretty-printed when a MetaIndent
// is configured. Rendering is a diagnostic path: unserializable metadata
// degrades to a JSON object naming the serialization error instead of
// failing the render.
func (f *Formatter) renderMeta(meta any) string {
	var (
		data []byte
		err  error
	)
	if f.metaIndent != "" {
		data, err = json.MarshalIndent(meta, "", f.metaIndent)
	} else {
		data, err = json.Marshal(meta)
	}
	if err != nil {
		return fmt.Sprintf(`{"!meta":%q}`, err.Error())
	}
	return string(data)
}

// -----------------------------------------------------------------------------
// Error formatting
// -----------------------------------------------------------------------------

// Format implements fmt.Formatter.
//
//	%s, %v → concise message (Error())
//	%+v    → full lean trace via the installed default Formatter
//	%q     → quoted Error()
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, Default().Render(e))
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

var _ fmt.Formatter = (*Error)(nil)
