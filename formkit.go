// Package formkit is the convenience entry point for rendering the movie
// recommender forms. Most callers only need GenerateHTML or NewOrchestrator;
// the sub-packages expose the form engine, validators and renderers directly.
package formkit

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes orchestrator.New from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader exposes openapi.NewLoader from the module root.
func NewLoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// GenerateHTML renders the form formID with the vanilla renderer.
func GenerateHTML(ctx context.Context, formID string, renderOptions RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:        formID,
		Renderer:      "vanilla",
		RenderOptions: renderOptions,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// EmbeddedTemplates exposes the vanilla renderer templates so callers can
// extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the vanilla renderer stylesheet.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
