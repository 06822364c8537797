// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// FillForm routes values through form.Update, failing the test on unknown or
// blocked keys.
func FillForm(t *testing.T, f *form.Form, values map[string]string) {
	t.Helper()
	for key, value := range values {
		if err := f.Update(key, value); err != nil {
			t.Fatalf("fill %s: %v", key, err)
		}
	}
}

// MustReadFile reads a fixture relative to the package under test.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
