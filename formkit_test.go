package formkit_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

func TestGenerateHTML(t *testing.T) {
	html, err := formkit.GenerateHTML(context.Background(), "login", formkit.RenderOptions{
		Values: map[string]string{"username": "user@test.com"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `value="user@test.com"`) {
		t.Fatalf("expected prefilled username, got %s", out)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(formkit.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
	if _, err := fs.Stat(formkit.EmbeddedAssets(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
}
