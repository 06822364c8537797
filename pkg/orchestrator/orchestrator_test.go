package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
)

type stubRenderer struct {
	name string
	last *form.Form
	opts render.RenderOptions
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	s.last = f
	s.opts = opts
	return []byte(f.Title), nil
}

func newRegistry(t *testing.T, renderers ...render.Renderer) *render.Registry {
	t.Helper()
	registry, err := render.NewRegistry(renderers...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return registry
}

const signupSpec = `
openapi: 3.0.3
info: {title: Accounts, version: "1"}
paths: {}
components:
  schemas:
    Signup:
      type: object
      required: [email]
      properties:
        email: {type: string, format: email}
`

func TestGenerate_BuiltinDefinition(t *testing.T) {
	renderer := &stubRenderer{name: "stub"}
	orch := orchestrator.New(orchestrator.WithRegistry(newRegistry(t, renderer)))

	res, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:        "login",
		RenderOptions: render.RenderOptions{Action: "/login"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(res.Output) != "Login" || res.ContentType != "text/plain" {
		t.Fatalf("unexpected result %q %q", res.Output, res.ContentType)
	}
	if renderer.opts.Action != "/login" {
		t.Fatalf("render options not forwarded: %+v", renderer.opts)
	}
	if diff := cmp.Diff([]string{"login", "register"}, orch.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_DefaultVanillaRenderer(t *testing.T) {
	res, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{FormID: "register"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(res.Output), "Create Account") {
		t.Fatalf("expected vanilla html, got %s", res.Output)
	}
	if res.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", res.ContentType)
	}
}

func TestGenerate_CustomDefinitions(t *testing.T) {
	store, err := definition.LoadFS(fstest.MapFS{
		"forms/rate.yaml": &fstest.MapFile{Data: []byte(`
forms:
  rate:
    title: Rate Movie
    items:
      - kind: textField
        title: Rating
        key: rating
`)},
	})
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	renderer := &stubRenderer{name: "stub"}
	orch := orchestrator.New(
		orchestrator.WithDefinitions(store),
		orchestrator.WithRegistry(newRegistry(t, renderer)),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "rate"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "login"}); !errors.Is(err, definition.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate_OpenAPISchema(t *testing.T) {
	renderer := &stubRenderer{name: "stub"}
	loader := openapi.NewLoader(openapi.WithFileSystem(fstest.MapFS{
		"account.yaml": &fstest.MapFile{Data: []byte(signupSpec)},
	}))
	orch := orchestrator.New(
		orchestrator.WithOpenAPILoader(loader),
		orchestrator.WithRegistry(newRegistry(t, renderer)),
	)

	res, err := orch.Generate(context.Background(), orchestrator.Request{
		Source: openapi.SourceFromFS("account.yaml"),
		Schema: "Signup",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := res.Form.Item("email"); !ok {
		t.Fatalf("expected email field")
	}

	_, err = orch.Generate(context.Background(), orchestrator.Request{Source: openapi.SourceFromFS("account.yaml")})
	if err == nil {
		t.Fatalf("expected error without schema")
	}
}

func TestGenerate_RendererSelection(t *testing.T) {
	first := &stubRenderer{name: "first"}
	second := &stubRenderer{name: "second"}
	orch := orchestrator.New(
		orchestrator.WithRegistry(newRegistry(t, first, second)),
		orchestrator.WithDefaultRenderer("missing"),
	)
	ctx := context.Background()

	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "login"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first.last == nil {
		t.Fatalf("expected fallback to the registry default")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "login", Renderer: "second"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if second.last == nil {
		t.Fatalf("expected explicit renderer to be used")
	}
	_, err := orch.Generate(ctx, orchestrator.Request{FormID: "login", Renderer: "nope"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestGenerate_AppliesTransformers(t *testing.T) {
	renderer := &stubRenderer{name: "stub"}
	var calls []string
	orch := orchestrator.New(
		orchestrator.WithRegistry(newRegistry(t, renderer)),
		orchestrator.WithTransformers(
			orchestrator.TransformerFunc(func(_ context.Context, f *form.Form) error {
				calls = append(calls, "first")
				f.Title = "Patched"
				return nil
			}),
			orchestrator.TransformerFunc(func(_ context.Context, _ *form.Form) error {
				calls = append(calls, "second")
				return errors.New("boom")
			}),
		),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "login"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if renderer.last != nil {
		t.Fatalf("renderer should not run after a transformer error")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orchestrator.New().Generate(ctx, orchestrator.Request{FormID: "login"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
