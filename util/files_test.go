package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.json")
	if err := os.WriteFile(file, []byte(`{a:1}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadInput(file)
	if err != nil {
		t.Fatalf("ReadInput() error: %v", err)
	}
	if got != `{a:1}` {
		t.Errorf("ReadInput() = %q", got)
	}

	if _, err := ReadInput(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ReadInput() on missing file should fail")
	}
	if _, err := ReadInput(dir); err == nil {
		t.Error("ReadInput() on a directory should fail")
	}
}

func TestReadInput_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	go func() {
		_, _ = w.Write([]byte(`[1,2,]`))
		w.Close()
	}()

	got, err := ReadInput("-")
	if err != nil {
		t.Fatalf("ReadInput(-) error: %v", err)
	}
	if got != `[1,2,]` {
		t.Errorf("ReadInput(-) = %q", got)
	}
}

func TestWriteOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.json")
	if err := WriteOutput(file, `{}`); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}\n" {
		t.Errorf("file content = %q, want %q", data, "{}\n")
	}
}

func TestIsInteractive_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	if IsInteractive() {
		t.Error("IsInteractive() = true with stdin on a pipe")
	}
}
