package openapi

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// Extensions read from schema properties.
const (
	ExtensionOrder         = "x-order"
	ExtensionPlaceholder   = "x-placeholder"
	ExtensionIcon          = "x-icon"
	ExtensionContinueTitle = "x-continue-title"
)

// DateLayout is the layout used for properties with format date.
const DateLayout = "2006-01-02"

// ErrSchemaNotFound is returned when the named component schema does not exist.
var ErrSchemaNotFound = errors.New("openapi: schema not found")

// BuildOption configures Document.Form.
type BuildOption func(*buildConfig)

type buildConfig struct {
	labeler       Labeler
	title         string
	continueTitle string
}

// WithLabeler overrides how property names become row titles when the
// property has no title of its own.
func WithLabeler(labeler Labeler) BuildOption {
	return func(cfg *buildConfig) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithTitle overrides the form title.
func WithTitle(title string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.title = title
	}
}

// WithContinueTitle overrides the submit button title.
func WithContinueTitle(title string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.continueTitle = title
	}
}

type property struct {
	name   string
	order  float64
	schema *openapi3.Schema
}

// Form builds a form from the component schema called name. Properties are
// ordered by their x-order extension (unordered ones last) and then by name.
// Object and array properties are skipped.
func (d *Document) Form(name string, options ...BuildOption) (*form.Form, error) {
	schema, ok := d.schema(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}

	cfg := buildConfig{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	required := make(map[string]bool, len(schema.Required))
	for _, key := range schema.Required {
		required[key] = true
	}

	props := make([]property, 0, len(schema.Properties))
	for key, ref := range schema.Properties {
		if ref == nil || ref.Value == nil || !isScalar(ref.Value) {
			continue
		}
		order, ok := numberExtension(ref.Value.Extensions, ExtensionOrder)
		if !ok {
			order = math.MaxFloat64
		}
		props = append(props, property{name: key, order: order, schema: ref.Value})
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("openapi: schema %q has no scalar properties", name)
	}
	sort.Slice(props, func(i, j int) bool {
		if props[i].order != props[j].order {
			return props[i].order < props[j].order
		}
		return props[i].name < props[j].name
	})

	items := make([]*form.Item, 0, len(props))
	for _, prop := range props {
		items = append(items, buildField(prop, required[prop.name], cfg.labeler))
	}

	title := cfg.title
	if title == "" {
		title = schema.Title
	}
	if title == "" {
		title = cfg.labeler(name)
	}
	f := form.New(title, items...)

	f.ContinueTitle = cfg.continueTitle
	if f.ContinueTitle == "" {
		f.ContinueTitle = stringExtension(schema.Extensions, ExtensionContinueTitle)
	}
	if f.ContinueTitle == "" {
		f.ContinueTitle = "Submit"
	}
	return f, nil
}

func buildField(prop property, required bool, labeler Labeler) *form.Item {
	s := prop.schema
	title := s.Title
	if title == "" {
		title = labeler(prop.name)
	}

	cfg := form.TextFieldConfig{
		Title:       title,
		Key:         prop.name,
		Placeholder: stringExtension(s.Extensions, ExtensionPlaceholder),
		IconName:    stringExtension(s.Extensions, ExtensionIcon),
		Blocked:     s.ReadOnly,
		ExtraInfo:   s.Description,
	}
	if def, ok := s.Default.(string); ok {
		cfg.Value = form.String(def)
	}

	switch {
	case s.Type.Is(openapi3.TypeInteger):
		cfg.UI = form.NumberCellProperties
	case s.Type.Is(openapi3.TypeNumber):
		cfg.UI = form.MoneyCellProperties
	}

	switch s.Format {
	case "email":
		cfg.UI = form.EmailCellProperties
		cfg.Validators = append(cfg.Validators, validators.Email())
		if cfg.IconName == "" {
			cfg.IconName = "email"
		}
	case "password":
		cfg.TextType = form.TextSecure
		cfg.Validators = append(cfg.Validators, validators.Password(title))
		if cfg.IconName == "" {
			cfg.IconName = "password"
		}
	case "date":
		cfg.Validators = append(cfg.Validators, validators.Date(DateLayout, title))
	case "phone", "tel":
		cfg.UI = form.NumberCellProperties
		cfg.Validators = append(cfg.Validators, validators.Number(title))
	}

	if s.MinLength > 0 || s.MaxLength != nil {
		var lower, upper *int
		if s.MinLength > 0 {
			lower = validators.Limit(int(s.MinLength))
		}
		if s.MaxLength != nil {
			upper = validators.Limit(int(*s.MaxLength))
		}
		cfg.Validators = append(cfg.Validators, validators.CharCount(lower, upper, title))
	}

	if required {
		cfg.Validators = append(cfg.Validators, validators.Required(title))
	}
	return form.NewTextField(cfg)
}

func isScalar(s *openapi3.Schema) bool {
	if s.Type == nil || len(s.Type.Slice()) == 0 {
		return len(s.Properties) == 0 && s.Items == nil
	}
	return s.Type.Includes(openapi3.TypeString) ||
		s.Type.Includes(openapi3.TypeInteger) ||
		s.Type.Includes(openapi3.TypeNumber)
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return value
	}
	return ""
}

func numberExtension(ext map[string]any, key string) (float64, bool) {
	switch value := ext[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}
