package laeh2

import (
	"encoding/json"
	"testing"
)

func TestFieldsFromKV_PairsLeftToRight(t *testing.T) {
	t.Parallel()

	fs := fieldsFromKV("a", 1, "b", "x")
	if len(fs) != 2 || fs[0] != (Field{Key: "a", Val: 1}) || fs[1] != (Field{Key: "b", Val: "x"}) {
		t.Fatalf("fields = %#v", fs)
	}
}

func TestFieldsFromKV_NonStringKeyDropsWholePair(t *testing.T) {
	t.Parallel()

	// Dropping both halves keeps later pairs aligned.
	fs := fieldsFromKV(123, "v1", "k2", "v2")
	if len(fs) != 1 || fs[0].Key != "k2" || fs[0].Val != "v2" {
		t.Fatalf("fields = %#v, want only (k2, v2)", fs)
	}
}

func TestFieldsFromKV_TrailingKeyGetsNil(t *testing.T) {
	t.Parallel()

	fs := fieldsFromKV("a", 1, "dangling")
	if len(fs) != 2 || fs[1].Key != "dangling" || fs[1].Val != nil {
		t.Fatalf("fields = %#v", fs)
	}
}

func TestFieldsFromKV_AllDroppedIsNil(t *testing.T) {
	t.Parallel()

	if fs := fieldsFromKV(1, 2); fs != nil {
		t.Fatalf("fields = %#v, want nil", fs)
	}
}

func TestMetaFromArgs(t *testing.T) {
	t.Parallel()

	if m := metaFromArgs(nil); m != nil {
		t.Fatalf("no args should attach nothing")
	}
	opaque := map[string]any{"a": 1}
	if m := metaFromArgs([]any{opaque}); m == nil {
		t.Fatalf("single arg should attach opaquely")
	}
	m := metaFromArgs([]any{"a", 1, "b", 2})
	if fs, ok := m.(Fields); !ok || len(fs) != 2 {
		t.Fatalf("multiple args should parse as ordered fields; got %#v", m)
	}
}

func TestFieldsMarshalJSON_InsertionOrder(t *testing.T) {
	t.Parallel()

	fs := Fields{{Key: "z", Val: 1}, {Key: "a", Val: "x"}, {Key: "m", Val: nil}}
	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"z":1,"a":"x","m":null}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestFieldsMarshalJSON_Empty(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Fields{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("got %s, want {}", data)
	}
}

func TestFieldsMarshalJSON_DuplicateKeysEmittedAsGiven(t *testing.T) {
	t.Parallel()

	fs := Fields{{Key: "a", Val: 1}, {Key: "a", Val: 2}}
	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1,"a":2}` {
		t.Fatalf("got %s", data)
	}
}
