package definition

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/validation"
	"github.com/goliatone/go-formkit/pkg/form"
)

// ErrNotFound is returned when a form id is not defined.
var ErrNotFound = errors.New("definition: form not found")

type entry struct {
	spec   FormSpec
	source string
}

// Store holds the forms defined across one or more files.
type Store struct {
	forms map[string]entry
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file. A nil fsys
// yields an empty store. Form ids must be unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes and checks a single document. The extension of source picks
// the decoder; anything other than .json is read as YAML.
func Parse(data []byte, source string) (Document, error) {
	var doc Document
	if strings.TrimSpace(string(data)) == "" {
		return doc, fmt.Errorf("definition: file %s is empty", source)
	}

	var err error
	if strings.EqualFold(filepath.Ext(source), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("definition: parse %s: %w", source, err)
	}

	if err := validation.Struct(doc); err != nil {
		return Document{}, fmt.Errorf("definition: %s: %w", source, err)
	}
	for id, spec := range doc.Forms {
		if err := spec.check(); err != nil {
			return Document{}, fmt.Errorf("definition: %s: form %q: %w", source, id, err)
		}
	}
	return doc, nil
}

func (s *Store) add(doc Document, source string) error {
	for rawID, spec := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("definition: file %s defines an empty form id", source)
		}
		if existing, ok := s.forms[id]; ok {
			return fmt.Errorf("definition: duplicate form %q (files %s and %s)", id, existing.source, source)
		}
		s.forms[id] = entry{spec: spec, source: source}
	}
	return nil
}

// IDs lists the defined form ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spec returns the declaration of a form.
func (s *Store) Spec(id string) (FormSpec, bool) {
	if s == nil {
		return FormSpec{}, false
	}
	e, ok := s.forms[id]
	return e.spec, ok
}

// Build constructs a fresh form from the definition with the given id. Each
// call returns an independent form.
func (s *Store) Build(id string) (*form.Form, error) {
	spec, ok := s.Spec(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return spec.Build(), nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
