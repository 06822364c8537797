package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. Informational
// rows are printed, text fields are prompted in row order, and the form is
// validated on submit; invalid fields are re-prompted until the form passes
// or the attempt budget runs out.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	maxAttempts       int
	confirmSubmit     bool
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the interactive session and serializes the form results.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	render.ApplyValues(f, opts.Values)

	if f.Title != "" {
		if err := r.info(ctx, f.Title); err != nil {
			return nil, err
		}
	}
	if opts.Message != nil {
		if err := r.alert(ctx, opts.Message.String()); err != nil {
			return nil, err
		}
	}

	for _, row := range f.Rows() {
		if err := r.renderRow(ctx, f, row); err != nil {
			return nil, err
		}
	}

	if err := r.validate(ctx, f); err != nil {
		return nil, err
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitCaption(f), Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	values := f.DictResults()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// validate runs IsValid, printing the combined message and re-prompting the
// failing fields between attempts. Blocked fields are never re-prompted; when
// only blocked fields fail there is nothing to ask and validation stops.
func (r *Renderer) validate(ctx context.Context, f *form.Form) error {
	for attempt := 1; ; attempt++ {
		ok, message := f.IsValid()
		if ok {
			return nil
		}
		if err := r.alert(ctx, message.String()); err != nil {
			return err
		}
		editable := editableInvalid(f)
		if attempt >= r.maxAttempts || len(editable) == 0 {
			return fmt.Errorf("%w: %s", ErrInvalid, strings.ReplaceAll(message.String(), "\n", "; "))
		}
		for _, item := range editable {
			f.ResetValidity(item.Field.Key)
			if err := r.promptField(ctx, f, item); err != nil {
				return err
			}
		}
	}
}

func editableInvalid(f *form.Form) []*form.Item {
	var items []*form.Item
	for _, key := range f.InvalidKeys() {
		if item, ok := f.Item(key); ok && !item.Field.Blocked {
			items = append(items, item)
		}
	}
	return items
}

func (r *Renderer) renderRow(ctx context.Context, f *form.Form, row form.Row) error {
	item := row.Item
	switch row.Cell {
	case form.CellAttributedText:
		if item.Info == nil {
			return nil
		}
		return r.info(ctx, strings.TrimSpace(item.Info.Text.String()))
	case form.CellIcon, form.CellImage:
		if item.Graphic == nil || item.Graphic.Name == "" {
			return nil
		}
		return r.info(ctx, "["+item.Graphic.Name+"]")
	default:
		if item.Field == nil {
			return nil
		}
		if item.Field.Blocked {
			return r.info(ctx, fmt.Sprintf("%s: %s", item.Title, item.Field.Text()))
		}
		return r.promptField(ctx, f, item)
	}
}

// promptField asks for a value and routes it through form.Update. Secure
// fields never echo their previous value as a default.
func (r *Renderer) promptField(ctx context.Context, f *form.Form, item *form.Item) error {
	if item == nil || item.Field == nil {
		return nil
	}
	field := item.Field
	cfg := InputConfig{
		Message: item.Title,
		Help:    fieldHelp(field),
	}

	var (
		response string
		err      error
	)
	if field.TextType == form.TextSecure {
		response, err = r.driver.Password(ctx, cfg)
	} else {
		cfg.Default = field.Text()
		response, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	return f.Update(field.Key, response)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) alert(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func fieldHelp(field *form.TextField) string {
	parts := make([]string, 0, 2)
	if field.Placeholder != "" {
		parts = append(parts, field.Placeholder)
	}
	if field.ExtraInfo != "" {
		parts = append(parts, field.ExtraInfo)
	}
	return strings.Join(parts, " - ")
}

func submitCaption(f *form.Form) string {
	if f.ContinueTitle != "" {
		return f.ContinueTitle + "?"
	}
	return "Submit?"
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
