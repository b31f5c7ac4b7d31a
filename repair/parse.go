package repair

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SyntaxError describes why a text is not valid JSON.
type SyntaxError struct {
	// Msg is a human-readable description, never empty.
	Msg string
	// Offset is the byte offset where the problem was detected.
	Offset int64
}

func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Offset)
	}
	return e.Msg
}

// Result holds either a parsed JSON value or the reason parsing failed.
type Result struct {
	// Value is nil, bool, json.Number, string, []any or *Object.
	// It is only meaningful when Err is nil.
	Value any
	Err   *SyntaxError
}

// Success returns a result wrapping v.
func Success(v any) Result {
	return Result{Value: v}
}

// Failure returns a result wrapping err.
func Failure(err *SyntaxError) Result {
	return Result{Err: err}
}

// OK reports whether r holds a value.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the failure message, or "" for a successful result.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Parse parses text as a single strict JSON value. Whitespace around the
// value is allowed, anything else after it is not. Parse never panics; every
// problem is reported as a Failure.
func Parse(text string) Result {
	var raw json.RawMessage

	// Unmarshal validates the whole input before decoding anything, which
	// gives one error message for every kind of grammar violation.
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Failure(newSyntaxError(err))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Failure(newSyntaxError(err))
	}
	return Success(v)
}

func newSyntaxError(err error) *SyntaxError {
	var se *json.SyntaxError

	if errors.As(err, &se) {
		return &SyntaxError{Msg: se.Error(), Offset: se.Offset}
	}
	msg := err.Error()
	if msg == "" {
		msg = "invalid JSON"
	}
	return &SyntaxError{Msg: msg}
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not a string", keyTok)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
}
