package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Renderer turns a form into a byte representation (terminal transcript,
// HTML, JSON). Renderers read the form's rows and never reimplement
// validation; interactive renderers feed edits back through form.Update.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
