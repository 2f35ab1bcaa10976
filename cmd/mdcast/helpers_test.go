package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/choonkeat/mdcast/internal/cast"
)

const testDoc = "# Demo\n\nInstall it:\n\n```sh\n# fetch the code\ngit clone repo\n```\n\nRun it:\n\n```\nmake run\n```\n"

// generateTestDocument writes the artifacts of testDoc into a temp dir and
// returns that dir.
func generateTestDocument(t *testing.T) (string, *Manifest) {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Output.Dir = dir

	var out bytes.Buffer
	m, err := generateDocument([]byte(testDoc), generateOptions{
		cfg:    cfg,
		env:    cast.Env{Cwd: "/src"},
		jitter: func() float64 { return 0.25 },
		stdout: &out,
	})
	if err != nil {
		t.Fatalf("generateDocument: %v", err)
	}
	return dir, m
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
