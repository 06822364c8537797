package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrHTTPDisabled is returned when a URL source is loaded without an HTTP
// client configured.
var ErrHTTPDisabled = errors.New("openapi: http sources are disabled")

// Loader reads and parses OpenAPI documents. The zero configuration reads
// files from disk only.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	timeout  time.Duration
	validate bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the filesystem used by SourceFromFS sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithHTTPClient enables URL sources through client. A positive timeout bounds
// each fetch.
func WithHTTPClient(client *http.Client, timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.http = client
		l.timeout = timeout
	}
}

// WithValidation runs the kin-openapi document validator after parsing.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.validate = enabled
	}
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Document is a parsed OpenAPI document together with its origin.
type Document struct {
	source Source
	spec   *openapi3.T
}

// Load fetches src and parses it.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		raw []byte
		err error
	)
	switch src.Kind() {
	case SourceKindFile:
		raw, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi: filesystem is not configured")
		}
		raw, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		raw, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	return l.Parse(ctx, src, raw)
}

// Parse parses raw (JSON or YAML) as an OpenAPI 3 document.
func (l *Loader) Parse(ctx context.Context, src Source, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse document: %w", err)
	}
	if l.validate {
		if err := spec.Validate(ctx); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	return &Document{source: src, spec: spec}, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, ErrHTTPDisabled
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Source returns the origin of the document. It is nil for documents parsed
// without one.
func (d *Document) Source() Source {
	return d.source
}

// Title returns info.title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Schemas lists the component schema names, sorted.
func (d *Document) Schemas() []string {
	if d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Document) schema(name string) (*openapi3.Schema, bool) {
	if d.spec.Components == nil {
		return nil, false
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, false
	}
	return ref.Value, true
}
