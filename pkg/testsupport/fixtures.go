package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// updateGoldens is the environment switch that rewrites golden files instead
// of comparing against them.
const updateGoldens = "UPDATE_GOLDENS"

// Context returns the context tests hand to orchestrator and provider calls.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString returns the contents of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// AssertGolden compares rendered output with the golden file at path. With
// UPDATE_GOLDENS set the file is rewritten and the comparison skipped.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if os.Getenv(updateGoldens) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), string(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", path, diff)
	}
}

// CaptureTemplateOutput runs a render call that both returns its output and
// streams it to a writer, and returns the two copies.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (returned, written string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
