package repair

import (
	"encoding/json"
	"reflect"
	"testing"
)

func obj(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{
			name:  "null",
			input: "null",
			want:  nil,
		},
		{
			name:  "true with whitespace",
			input: " \n\ttrue\r\n",
			want:  true,
		},
		{
			name:  "number literal kept",
			input: "1.50",
			want:  json.Number("1.50"),
		},
		{
			name:  "string with escapes",
			input: `"a\"bé"`,
			want:  `a"bé`,
		},
		{
			name:  "empty array",
			input: "[]",
			want:  []any{},
		},
		{
			name:  "empty object",
			input: "{}",
			want:  NewObject(),
		},
		{
			name:  "nested",
			input: `{"a":[1,{"b":null}],"c":"d"}`,
			want: obj(
				"a", []any{json.Number("1"), obj("b", nil)},
				"c", "d",
			),
		},
		{
			name:  "insertion order kept",
			input: `{"b":2,"a":1}`,
			want:  obj("b", json.Number("2"), "a", json.Number("1")),
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"a":1,"b":2,"a":3}`,
			want:  obj("a", json.Number("3"), "b", json.Number("2")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.input)
			if !r.OK() {
				t.Fatalf("Parse(%q) failed: %v", tt.input, r.Err)
			}
			if !reflect.DeepEqual(r.Value, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, r.Value, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"trailing comma", `{"a":1,}`},
		{"unquoted key", `{a:1}`},
		{"unterminated string", `{"a":"b}`},
		{"unclosed object", `{"a":1`},
		{"unclosed array", `[1,2`},
		{"nested openers", `{{{`},
		{"two top-level values", `1 2`},
		{"garbage after value", `{"a":1}}`},
		{"single quotes", `{'a':1}`},
		{"leading zero", `01`},
		{"bare word", `hello`},
		{"comment", `{"a":1 // note
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.input)
			if r.OK() {
				t.Fatalf("Parse(%q) succeeded with %#v, want failure", tt.input, r.Value)
			}
			if r.Err.Msg == "" {
				t.Errorf("Parse(%q) failure has empty message", tt.input)
			}
			if r.Message() == "" {
				t.Errorf("Parse(%q) Message() is empty", tt.input)
			}
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	r := Parse(`{"a":1,}`)
	if r.OK() {
		t.Fatal("expected failure")
	}
	if r.Err.Offset != 8 {
		t.Errorf("expected offset 8, got %d", r.Err.Offset)
	}
}

func TestResult_Variants(t *testing.T) {
	ok := Success("x")
	if !ok.OK() || ok.Message() != "" {
		t.Errorf("Success result: OK=%v Error=%q", ok.OK(), ok.Message())
	}
	bad := Failure(&SyntaxError{Msg: "boom"})
	if bad.OK() || bad.Message() != "boom" {
		t.Errorf("Failure result: OK=%v Error=%q", bad.OK(), bad.Message())
	}
}
