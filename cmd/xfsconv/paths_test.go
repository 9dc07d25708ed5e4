package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		f    render.Format
		want string
	}{
		{"enemy.xfs", render.FormatXML, "enemy.xfs.xml"},
		{"dir/enemy.xfs", render.FormatJSON, "dir/enemy.xfs.json"},
		{"noext", render.FormatYAML, "noext.yaml"},
		{"x.xfs", "", "x.xfs.xml"},
	}
	for _, tc := range tests {
		if got := outputPath(tc.in, tc.f); got != tc.want {
			t.Errorf("outputPath(%q, %q): got %q want %q", tc.in, tc.f, got, tc.want)
		}
	}
}

func TestCheckInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.xfs")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := checkInput(file); err != nil {
		t.Fatalf("existing file: %v", err)
	}
	if err := checkInput(filepath.Join(dir, "missing.xfs")); err == nil || !strings.Contains(err.Error(), "doesn't exist") {
		t.Fatalf("missing file: %v", err)
	}
	if err := checkInput(dir); err == nil {
		t.Fatal("directory accepted as input")
	}
	if err := checkInput(" "); err == nil {
		t.Fatal("blank path accepted as input")
	}
}

func TestWriteOutputReplacesAtomically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writeOutput(path, &xfs.Container{}, render.FormatXML); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "<ArrayOfStructure></ArrayOfStructure>" {
		t.Fatalf("content: %q", got)
	}

	if err := writeOutput(path, &xfs.Container{}, render.Format("csv")); err == nil {
		t.Fatal("expected render error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}
