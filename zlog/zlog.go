// zlog.go — zerolog sink adapter for laeh2.
//
// The core stays policy-free; this package is the log-sink end of the
// pipeline: it turns delivered *Error values into structured zerolog
// events carrying the message, the raise-time metadata, and the rendered
// boundary chain.
package zlog

import (
	"github.com/rs/zerolog"

	"github.com/youurayy/laeh2"
)

// Write logs e on l at error level. The event carries the concise message
// as the log message, the metadata under "meta" (when present), and the
// lean multi-boundary trace under "trace".
func Write(l zerolog.Logger, e *laeh2.Error) {
	WriteWith(l, laeh2.Default(), e)
}

// WriteWith is Write with an explicit Formatter instead of the installed
// process-wide one.
func WriteWith(l zerolog.Logger, f *laeh2.Formatter, e *laeh2.Error) {
	if e == nil {
		return
	}
	ev := l.Error().Str("trace", f.Render(e))
	if m := e.Meta(); m != nil {
		ev = ev.Interface("meta", m)
	}
	ev.Msg(e.Error())
}

// Handler adapts l into a completion handler that logs every delivered
// error. Use it as the terminal handler of a boundary chain:
//
//	cb := laeh2.Wrap(zlog.Handler(logger), true, loadConfig)
func Handler(l zerolog.Logger) laeh2.Handler {
	return func(e *laeh2.Error) {
		Write(l, e)
	}
}

// Tee logs every delivered error on l and then forwards it to next. It lets
// a sink observe failures without taking over completion handling.
func Tee(l zerolog.Logger, next laeh2.Handler) laeh2.Handler {
	return func(e *laeh2.Error) {
		Write(l, e)
		if next != nil {
			next(e)
		}
	}
}
