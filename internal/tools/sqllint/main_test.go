package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGo(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintFileFlagsMissingMarker(t *testing.T) {
	dir := t.TempDir()
	path := writeGo(t, dir, "q.go", "package q\n\n"+
		"const QGood = `--sql 0b7e2f4a-5c1d-4e8b-9a3f-6d2c1b0a9e8f\nSELECT 1`\n\n"+
		"const QBad = `\nselect value from ledger_state`\n\n"+
		"const Usage = \"please update your settings with care\"\n")

	violations, markers, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if len(violations) != 1 || violations[0].name != "QBad" {
		t.Fatalf("violations = %+v", violations)
	}
	if len(markers) != 1 || markers[0].name != "QGood" {
		t.Fatalf("markers = %+v", markers)
	}
}

func TestLintPathsFlagsDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	marker := "--sql 0b7e2f4a-5c1d-4e8b-9a3f-6d2c1b0a9e8f"
	writeGo(t, dir, "a.go", "package q\n\nconst QA = `"+marker+"\nSELECT 1`\n")
	writeGo(t, dir, "b.go", "package q\n\nconst QB = `"+marker+"\nCREATE TABLE t (id int)`\n")

	violations, err := lintPaths([]string{dir})
	if err != nil {
		t.Fatalf("lintPaths: %v", err)
	}
	if len(violations) != 1 || !strings.Contains(violations[0].message, "duplicate marker") {
		t.Fatalf("violations = %+v", violations)
	}
}

func TestLintPathsAcceptsLedgerQueries(t *testing.T) {
	violations, err := lintPaths([]string{filepath.Join("..", "..", "sqlinline")})
	if err != nil {
		t.Fatalf("lintPaths: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}
