package util

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

type fakeUpstream struct {
	raw       string
	err       error
	submitted any
}

func (f *fakeUpstream) Fetch(ctx context.Context) (string, error) {
	return f.raw, f.err
}

func (f *fakeUpstream) Submit(ctx context.Context, value any) (string, error) {
	f.submitted = value
	return "ok", f.err
}

func TestResolveText(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		opts    FixOptions
		ok      bool
		display string
		passes  []string
	}{
		{
			name:    "sanitizer is enough",
			raw:     `{a:1,}`,
			ok:      true,
			display: "{\n  \"a\": 1\n}",
			passes:  []string{"trailing-comma", "unquoted-key"},
		},
		{
			name:    "fenced without unwrap fails",
			raw:     "```json\n{\"a\":1}\n```",
			ok:      false,
			display: "```json\n{\"a\":1}\n```",
		},
		{
			name:    "fenced with unwrap",
			raw:     "```json\n{\"a\":1}\n```",
			opts:    FixOptions{Unwrap: true},
			ok:      true,
			display: "{\n  \"a\": 1\n}",
		},
		{
			name:    "single quotes need deep repair",
			raw:     `{'a': 1}`,
			opts:    FixOptions{Deep: true},
			ok:      true,
			display: "{\n  \"a\": 1\n}",
			passes:  []string{"jsonrepair"},
		},
		{
			name:    "single quotes without deep repair",
			raw:     `{'a': 1}`,
			ok:      false,
			display: `{'a': 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveText(tt.raw, tt.opts)
			if res.Result.OK() != tt.ok {
				t.Fatalf("ResolveText() OK = %v, want %v (%v)", res.Result.OK(), tt.ok, res.Result.Err)
			}
			if res.DisplayText != tt.display {
				t.Errorf("ResolveText() DisplayText = %q, want %q", res.DisplayText, tt.display)
			}
			if !reflect.DeepEqual(res.Passes, tt.passes) {
				t.Errorf("ResolveText() Passes = %v, want %v", res.Passes, tt.passes)
			}
		})
	}
}

func TestShowResolution(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "ok.json")
	if err := ShowResolution(repair.Resolve(`{"b":2,"a":1}`), FixOptions{Output: out}); err != nil {
		t.Fatalf("ShowResolution() error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "{\n  \"b\": 2,\n  \"a\": 1\n}\n" {
		t.Errorf("output = %q", data)
	}

	out = filepath.Join(dir, "query.txt")
	if err := ShowResolution(repair.Resolve(`{"b":2,"a":1}`), FixOptions{Output: out, Query: "a"}); err != nil {
		t.Fatalf("ShowResolution() with query error: %v", err)
	}
	data, _ = os.ReadFile(out)
	if string(data) != "1\n" {
		t.Errorf("query output = %q", data)
	}

	out = filepath.Join(dir, "bad.json")
	err := ShowResolution(repair.Resolve(`{{{`), FixOptions{Output: out})
	if err == nil {
		t.Fatal("ShowResolution() on failed resolution should return error")
	}
	data, _ = os.ReadFile(out)
	if string(data) != "{{{\n" {
		t.Errorf("failed output = %q, want sanitized text", data)
	}
}

func TestCmdFetch(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	up := &fakeUpstream{raw: `[1,2,]`}
	if err := CmdFetch(context.Background(), up, FixOptions{Output: out}); err != nil {
		t.Fatalf("CmdFetch() error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "[\n  1,\n  2\n]\n" {
		t.Errorf("output = %q", data)
	}

	up = &fakeUpstream{err: errors.New("connection refused")}
	if err := CmdFetch(context.Background(), up, FixOptions{Output: out}); err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("CmdFetch() error = %v, want connection refused", err)
	}
}

func TestCmdValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "edit.json")

	if err := os.WriteFile(file, []byte(`{"b":[1],"a":true}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CmdValidate(file, true, ""); err != nil {
		t.Fatalf("CmdValidate(check) error: %v", err)
	}
	data, _ := os.ReadFile(file)
	if string(data) != `{"b":[1],"a":true}` {
		t.Errorf("--check must not rewrite file, got %q", data)
	}

	if err := CmdValidate(file, false, ""); err != nil {
		t.Fatalf("CmdValidate() error: %v", err)
	}
	data, _ = os.ReadFile(file)
	if string(data) != "{\n  \"b\": [\n    1\n  ],\n  \"a\": true\n}\n" {
		t.Errorf("file not reformatted: %q", data)
	}

	if err := os.WriteFile(file, []byte(`{a:1}`), 0644); err != nil {
		t.Fatal(err)
	}
	err := CmdValidate(file, false, "")
	if err == nil || !strings.Contains(err.Error(), "edited JSON is invalid") {
		t.Errorf("CmdValidate() on invalid file error = %v", err)
	}
	data, _ = os.ReadFile(file)
	if string(data) != `{a:1}` {
		t.Errorf("invalid file must be left alone, got %q", data)
	}
}

func TestCmdSubmit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "edit.json")
	if err := os.WriteFile(file, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	up := &fakeUpstream{}
	if err := CmdSubmit(context.Background(), up, file); err != nil {
		t.Fatalf("CmdSubmit() error: %v", err)
	}
	compact, _ := repair.Compact(up.submitted)
	if compact != `{"a":1}` {
		t.Errorf("submitted %s", compact)
	}

	if err := os.WriteFile(file, []byte(`{"a":1,}`), 0644); err != nil {
		t.Fatal(err)
	}
	up = &fakeUpstream{}
	if err := CmdSubmit(context.Background(), up, file); err == nil {
		t.Error("CmdSubmit() must refuse invalid JSON")
	}
	if up.submitted != nil {
		t.Error("invalid JSON must not be submitted")
	}
}

func TestCmdEdit_NonInteractive(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	err = CmdEdit(context.Background(), &fakeUpstream{}, "", []string{"vi"}, FixOptions{})
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Errorf("CmdEdit() error = %v, want interactive terminal error", err)
	}
}
