package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dhamidi/sulk/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestChecker(format string) (*checker, *bytes.Buffer, *bytes.Buffer) {
	cfg := config.Defaults()
	cfg.Color = "never"
	cfg.Format = format
	var out, errOut bytes.Buffer
	return &checker{cfg: cfg, out: &out, errOut: &errOut}, &out, &errOut
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sol"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.sol"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "c.sol"), "")
	explicit := filepath.Join(dir, "notes.txt")

	c, _, _ := newTestChecker("human")
	files, err := c.collect([]string{dir, explicit})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.sol"),
		filepath.Join(dir, "sub", "b.sol"),
		explicit,
	}
	if !slices.Equal(files, want) {
		t.Errorf("collect = %v, want %v", files, want)
	}
}

func TestCheckClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.sol"), "pragma solidity ^0.8.0;\ncontract C {}\n")

	c, _, errOut := newTestChecker("human")
	if err := c.run([]string{dir}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected diagnostics:\n%s", errOut)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.sol"), "contract C {")
	writeFile(t, filepath.Join(dir, "ok.sol"), "contract D {}")

	c, _, errOut := newTestChecker("human")
	err := c.run([]string{dir})
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("run = %v, want errCheckFailed", err)
	}

	got := errOut.String()
	for _, want := range []string{"expected `}`, found `<eof>`", "aborting due to 1 previous error"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestCheckMissingFile(t *testing.T) {
	c, _, errOut := newTestChecker("human")
	err := c.run([]string{filepath.Join(t.TempDir(), "missing.sol")})
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("run = %v, want errCheckFailed", err)
	}
	if !strings.Contains(errOut.String(), "couldn't read") {
		t.Errorf("missing read error in:\n%s", errOut)
	}
}

func TestCheckOutline(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"human", "SourceUnit\n  Contract contract C\n"},
		{"json", `"outline":`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.sol")
			writeFile(t, path, "contract C {}")

			c, out, _ := newTestChecker(tt.format)
			c.outline = true
			if err := c.run([]string{path}); err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("outline output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
}
