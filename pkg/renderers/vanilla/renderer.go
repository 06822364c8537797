package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icons            map[string]string
	defaultStyles    bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// provide templates/form.tmpl and one templates/cells/<cell>.tmpl per cell
// kind.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIcons registers inline SVG markup by icon name. Markup is sanitised
// once, at construction.
func WithIcons(icons map[string]string) Option {
	return func(cfg *config) {
		for name, markup := range icons {
			cfg.icons[name] = markup
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// Renderer renders a form as an HTML fragment, one partial per cell kind.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	icons      map[string]string
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), icons: DefaultIcons()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	icons := make(map[string]string, len(cfg.icons))
	for name, markup := range cfg.icons {
		if cleaned := SanitizeIcon(markup); cleaned != "" {
			icons[name] = cleaned
		}
	}

	r := &Renderer{templates: renderer, icons: icons}
	if cfg.defaultStyles {
		r.stylesheet = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render applies prefilled values, then renders every row through its cell
// partial and wraps them in the form template. Fields flagged invalid by the
// last IsValid carry an inline error indicator.
func (r *Renderer) Render(_ context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is required")
	}

	render.ApplyValues(f, options.Values)
	errs := render.MapErrors(f, options)

	rows := make([]string, 0, len(f.Items()))
	for _, row := range f.Rows() {
		html, err := r.renderRow(row, errs, options.Theme)
		if err != nil {
			return nil, err
		}
		rows = append(rows, html)
	}

	method := strings.ToLower(strings.TrimSpace(options.Method))
	if method == "" {
		method = "post"
	}
	continueTitle := f.ContinueTitle
	if continueTitle == "" {
		continueTitle = "Continue"
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"title":          f.Title,
		"continue_title": continueTitle,
		"method":         method,
		"action":         options.Action,
		"hidden":         hiddenContext(options.Hidden),
		"form_errors":    errs.Form,
		"rows":           rows,
		"stylesheet":     r.stylesheet,
		"css_vars":       cssVarsStyle(options.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderRow(row form.Row, errs render.ErrorMapping, cfg *theme.RendererConfig) (string, error) {
	item := row.Item
	data := map[string]any{
		"row":   strconv.Itoa(row.Position.Row),
		"title": item.Title,
		"tint":  item.UI.Tint,
	}

	switch row.Cell {
	case form.CellAttributedText:
		data["alignment"] = "left"
		if item.Info != nil {
			data["html"] = item.Info.Text.HTML()
			data["background"] = item.Info.Background
			if item.Info.Text != nil && item.Info.Text.Alignment != "" {
				data["alignment"] = string(item.Info.Text.Alignment)
			}
		}
	case form.CellIcon:
		if item.Graphic != nil {
			data["name"] = item.Graphic.Name
			data["icon"] = r.icons[item.Graphic.Name]
			if item.Graphic.Tint != "" {
				data["tint"] = item.Graphic.Tint
			}
		}
	case form.CellImage:
		if item.Graphic != nil {
			data["src"] = assetURL(cfg, item.Graphic.Name)
		}
	default:
		field := item.Field
		if field == nil {
			return "", fmt.Errorf("vanilla renderer: row %d has no text field payload", row.Position.Row)
		}
		messages := errs.Lookup(field.Key)
		data["key"] = field.Key
		data["placeholder"] = field.Placeholder
		data["icon"] = r.icons[field.IconName]
		data["extra_info"] = field.ExtraInfo
		data["blocked"] = field.Blocked
		data["invalid"] = !field.Valid || len(messages) > 0
		data["errors"] = messages
		data["input_type"], data["inputmode"] = inputType(item)
		if field.TextType != form.TextSecure {
			data["value"] = field.Text()
		}
	}

	name := "templates/cells/" + string(row.Cell) + ".tmpl"
	if cfg != nil {
		if partial := strings.TrimSpace(cfg.Partials["cell."+string(row.Cell)]); partial != "" {
			name = partial
		}
	}
	html, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s row: %w", row.Cell, err)
	}
	return strings.TrimSpace(html), nil
}

func inputType(item *form.Item) (string, string) {
	if item.Field.TextType == form.TextSecure {
		return "password", ""
	}
	switch item.UI.Keyboard {
	case form.KeyboardEmail:
		return "email", "email"
	case form.KeyboardPhone:
		return "tel", "tel"
	case form.KeyboardDecimal:
		return "text", "decimal"
	default:
		return "text", ""
	}
}

func hiddenContext(fields map[string]string) []map[string]any {
	sorted := render.SortedHiddenFields(fields)
	out := make([]map[string]any, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]any{"Name": field.Name, "Value": field.Value})
	}
	return out
}

func assetURL(cfg *theme.RendererConfig, name string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if url := cfg.AssetURL(name); url != "" {
			return url
		}
	}
	return name
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".formkit {")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}
