package repair

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestObject_SetKeepsPosition(t *testing.T) {
	o := NewObject()
	o.Set("z", json.Number("1"))
	o.Set("a", json.Number("2"))
	o.Set("z", json.Number("3"))

	if got := o.Keys(); !reflect.DeepEqual(got, []string{"z", "a"}) {
		t.Errorf("Keys() = %v", got)
	}
	if o.Len() != 2 {
		t.Errorf("Len() = %d, want 2", o.Len())
	}
	if v, ok := o.Get("z"); !ok || v != json.Number("3") {
		t.Errorf("Get(z) = %v, %v", v, ok)
	}
	if _, ok := o.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}
}

func TestObject_KeysIsACopy(t *testing.T) {
	o := obj("a", nil, "b", nil)
	keys := o.Keys()
	keys[0] = "changed"
	if o.Keys()[0] != "a" {
		t.Error("modifying Keys() result changed the object")
	}
}

func TestCompact(t *testing.T) {
	r := Parse("{\n  \"b\": [1, 2.0],\n  \"a\": {\"x\": \"<&>\"}\n}")
	if !r.OK() {
		t.Fatalf("parse failed: %v", r.Err)
	}
	got, err := Compact(r.Value)
	if err != nil {
		t.Fatalf("Compact() error: %v", err)
	}
	want := `{"b":[1,2.0],"a":{"x":"<&>"}}`
	if got != want {
		t.Errorf("Compact() = %s, want %s", got, want)
	}
}

func TestPretty_Empty(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{NewObject(), "{}"},
		{[]any{}, "[]"},
		{nil, "null"},
		{obj("a", []any{}, "b", NewObject()), "{\n  \"a\": [],\n  \"b\": {}\n}"},
	}
	for _, tt := range tests {
		got, err := Pretty(tt.value)
		if err != nil {
			t.Fatalf("Pretty(%#v) error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("Pretty(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
