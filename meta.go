// meta.go — metadata attachment for laeh2.
//
// Design:
//   - A single metadata argument is attached opaquely (any JSON-serializable
//     value, typically a map or struct).
//   - Two or more arguments are parsed as ordered (key, value) pairs into
//     Fields, which marshal to a JSON object in insertion order. Go map
//     iteration order is unspecified; a slice keeps renders deterministic.
package laeh2

import (
	"bytes"
	"encoding/json"
)

// Field is a single metadata key-value pair.
type Field struct {
	Key string
	Val any
}

// Fields is ordered metadata. It marshals to a JSON object preserving
// insertion order, which keeps rendered output reproducible.
type Fields []Field

// MarshalJSON writes the fields as a JSON object in insertion order.
// Duplicate keys are emitted as given; last-write-wins is left to readers.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(f.Val)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// metaFromArgs maps variadic metadata arguments onto the stored form:
// nothing → nil, one value → the value itself, more → ordered Fields.
func metaFromArgs(args []any) any {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	default:
		return fieldsFromKV(args...)
	}
}

// fieldsFromKV parses a variadic list of key-value arguments into Fields.
//
// Rules:
//   - Pairs are read left-to-right as (key, value).
//   - Keys must be strings; a non-string key drops the ENTIRE pair (the key
//     and its following value) so later pairs stay aligned.
//   - A trailing key with no value becomes (key, nil).
func fieldsFromKV(kv ...any) Fields {
	if len(kv) == 0 {
		return nil
	}
	out := make(Fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			if i+1 < len(kv) {
				i += 2
			} else {
				i++
			}
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
			i += 2
		} else {
			i++
		}
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var _ json.Marshaler = (Fields)(nil)
