package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/richtext"
)

// RenderOptions carry per-request data renderers use to customise output
// without mutating how the form itself is built.
type RenderOptions struct {
	// Values pre-populates text fields by key before rendering.
	Values map[string]string
	// Errors surfaces field-level feedback keyed by field key. When empty,
	// renderers fall back to the messages recorded by the last IsValid.
	Errors map[string][]string
	// Message is the form-level alert, typically the combined IsValid message
	// or a backend failure.
	Message *richtext.Text
	// Hidden fields are emitted alongside the visible rows by HTML renderers.
	Hidden map[string]string
	// Action and Method describe where HTML renderers submit the form.
	Action string
	Method string
	// Theme supplies partial overrides, CSS variables and asset URLs to HTML
	// renderers.
	Theme *theme.RendererConfig
}

// HiddenField is a single hidden input.
type HiddenField struct {
	Name  string
	Value string
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// output. Empty names are dropped; trimmed duplicates keep the last value in
// raw key order.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	raw := make([]string, 0, len(fields))
	for name := range fields {
		raw = append(raw, name)
	}
	sort.Strings(raw)

	clean := make(map[string]string, len(fields))
	for _, name := range raw {
		if key := strings.TrimSpace(name); key != "" {
			clean[key] = fields[name]
		}
	}
	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: clean[name]})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
