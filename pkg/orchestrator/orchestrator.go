package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDefinitions replaces the built-in definition store.
func WithDefinitions(store *definition.Store) Option {
	return func(o *Orchestrator) {
		o.definitions = store
	}
}

// WithOpenAPILoader injects the loader used for OpenAPI sources.
func WithOpenAPILoader(loader *openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithTransformers registers transformers run, in order, after the form is
// resolved and before it is rendered.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithLogger sets the logger.
//
//nolint:gocritic // zerolog.Logger is passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates form resolution and rendering. Missing
// dependencies fall back to the built-in definitions, a file-only OpenAPI
// loader and a registry holding the vanilla renderer.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	definitions     *definition.Store
	loader          *openapi.Loader
	transformers    []Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request selects a form and a renderer.
type Request struct {
	// FormID names a definition. Ignored when Source or Document is set.
	FormID string

	// Source locates an OpenAPI document to build the form from.
	Source openapi.Source

	// Document bypasses the loader with an already parsed document.
	Document *openapi.Document

	// Schema names the component schema when building from OpenAPI.
	Schema string

	// BuildOptions tune the OpenAPI form builder.
	BuildOptions []openapi.BuildOption

	// Renderer falls back to the orchestrator default when empty.
	Renderer string

	RenderOptions render.RenderOptions
}

// Result is a resolved form together with its rendered output.
type Result struct {
	Form        *form.Form
	Output      []byte
	ContentType string
}

// Generate resolves, transforms and renders the requested form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if o.initialiseErr != nil {
		return Result{}, o.initialiseErr
	}

	f, err := o.Resolve(ctx, req)
	if err != nil {
		return Result{}, err
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, f); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}
	o.logger.Debug().Str("form", f.Title).Str("renderer", renderer.Name()).Msg("rendering form")

	output, err := renderer.Render(ctx, f, req.RenderOptions)
	if err != nil {
		return Result{Form: f}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Result{Form: f, Output: output, ContentType: renderer.ContentType()}, nil
}

// Resolve builds the requested form without rendering it.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (*form.Form, error) {
	if req.Source != nil || req.Document != nil {
		return o.resolveOpenAPI(ctx, req)
	}
	if req.FormID == "" {
		return nil, errors.New("orchestrator: form id or openapi source is required")
	}
	f, err := o.definitions.Build(req.FormID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return f, nil
}

// Forms lists the definition ids the orchestrator can resolve.
func (o *Orchestrator) Forms() []string {
	return o.definitions.IDs()
}

func (o *Orchestrator) resolveOpenAPI(ctx context.Context, req Request) (*form.Form, error) {
	if req.Schema == "" {
		return nil, errors.New("orchestrator: schema is required for openapi forms")
	}
	doc := req.Document
	if doc == nil {
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		doc = loaded
	}
	f, err := doc.Form(req.Schema, req.BuildOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return f, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	// the configured default is missing; use the registry's own default
	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = openapi.NewLoader()
	}
	if o.definitions == nil {
		store, err := definition.Builtin()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: builtin definitions: %w", err)
			return
		}
		o.definitions = store
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
}
