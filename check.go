// check.go — the error-first check / raise helper.
//
// Check is the terse error-first guard: a no-op on falsy input, otherwise it
// promotes the value to an *Error, attaches metadata, and raises it via
// panic. The panic is not meant to escape: a boundary built with Wrap
// recovers it and routes the *Error to a completion handler.
package laeh2

import (
	"reflect"
)

// Check raises a promoted *Error when v is truthy; it returns normally when
// v is falsy. Falsy means: nil, a typed nil of a nilable kind, false, the
// empty string, or numeric zero.
//
// Metadata: one extra argument is attached opaquely; two or more are parsed
// as ordered key-value fields. Metadata supplied here overwrites any
// metadata previously attached to v.
//
// Control does not return on truthy input. Check is idempotent for falsy
// input and has no side effect beyond raising.
func Check(v any, meta ...any) {
	if isFalsy(v) {
		return
	}
	e := promote(v, 1)
	if m := metaFromArgs(meta); m != nil {
		e.meta = m
	}
	panic(e)
}

// isFalsy reports whether v counts as "no error" for Check.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
