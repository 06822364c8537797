package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Transformer mutates a resolved form before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, f *form.Form) error
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(ctx context.Context, f *form.Form) error

// Transform calls fn when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, f *form.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, f)
}

// PresetTransformer applies declarative overrides to a form:
//
//	title: Sign in
//	continueTitle: Go
//	fields:
//	  username:
//	    title: Work email
//	    placeholder: you@company.com
//	    value: demo@company.com
//	    blocked: true
type PresetTransformer struct {
	preset preset
}

type preset struct {
	Title         string                 `json:"title" yaml:"title"`
	ContinueTitle string                 `json:"continueTitle" yaml:"continueTitle"`
	Fields        map[string]fieldPreset `json:"fields" yaml:"fields"`
}

type fieldPreset struct {
	Title       string  `json:"title" yaml:"title"`
	Placeholder string  `json:"placeholder" yaml:"placeholder"`
	ExtraInfo   string  `json:"extraInfo" yaml:"extraInfo"`
	Value       *string `json:"value" yaml:"value"`
	Blocked     *bool   `json:"blocked" yaml:"blocked"`
}

// NewPresetTransformer parses a preset document. format is "json" or "yaml".
func NewPresetTransformer(data []byte, format string) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var doc preset
	var err error
	switch strings.ToLower(format) {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("preset transformer: unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{preset: doc}, nil
}

// NewPresetTransformerFromFS reads a preset from fsys. The format follows the
// file extension.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Transform applies the preset. Every field key in the preset must exist in
// the form.
func (t *PresetTransformer) Transform(ctx context.Context, f *form.Form) error {
	if f == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.preset.Title != "" {
		f.Title = t.preset.Title
	}
	if t.preset.ContinueTitle != "" {
		f.ContinueTitle = t.preset.ContinueTitle
	}

	keys := make([]string, 0, len(t.preset.Fields))
	for key := range t.preset.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item, ok := f.Item(key)
		if !ok {
			return fmt.Errorf("preset transformer: field %q not found", key)
		}
		applyFieldPreset(f, item, t.preset.Fields[key])
	}
	return nil
}

func applyFieldPreset(f *form.Form, item *form.Item, patch fieldPreset) {
	if patch.Title != "" {
		item.Title = patch.Title
	}
	if patch.Placeholder != "" {
		item.Field.Placeholder = patch.Placeholder
	}
	if patch.ExtraInfo != "" {
		item.Field.ExtraInfo = patch.ExtraInfo
	}
	if patch.Value != nil {
		// Update refuses blocked fields; the result must still track the value
		blocked := item.Field.Blocked
		item.Field.Blocked = false
		_ = f.Update(item.Field.Key, *patch.Value)
		item.Field.Blocked = blocked
	}
	if patch.Blocked != nil {
		item.Field.Blocked = *patch.Blocked
	}
}
