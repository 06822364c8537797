package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// ErrorMapping splits feedback into field-level messages keyed by field key
// and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Lookup returns the messages recorded for key.
func (m ErrorMapping) Lookup(key string) []string {
	if m.Fields == nil {
		return nil
	}
	return m.Fields[key]
}

// FieldErrors collects the messages recorded on invalid fields by the last
// form.IsValid call.
func FieldErrors(f *form.Form) map[string][]string {
	out := make(map[string][]string)
	for _, item := range f.Items() {
		key, ok := item.Key()
		if !ok || item.Field.Valid || item.Field.Message == nil {
			continue
		}
		out[key] = append(out[key], item.Field.Message.String())
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MapErrors resolves the errors a renderer should display. Explicit errors in
// options win; otherwise the form's own validation state is used. Keys that do
// not belong to a field become form-level messages in key order, followed by
// the lines of options.Message.
func MapErrors(f *form.Form, options RenderOptions) ErrorMapping {
	payload := options.Errors
	if len(payload) == 0 {
		payload = FieldErrors(f)
	}

	rawKeys := make([]string, 0, len(payload))
	for rawKey := range payload {
		rawKeys = append(rawKeys, rawKey)
	}
	sort.Strings(rawKeys)

	var formMessages []string
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for _, rawKey := range rawKeys {
		normalized := normalizeMessages(payload[rawKey])
		if len(normalized) == 0 {
			continue
		}
		key := strings.TrimSpace(rawKey)
		if _, ok := f.Item(key); !ok {
			formMessages = append(formMessages, normalized...)
			continue
		}
		mapping.Fields[key] = append(mapping.Fields[key], normalized...)
	}
	if options.Message != nil {
		formMessages = MergeFormErrors(formMessages, options.Message.Lines()...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(formMessages)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ApplyValues writes prefilled values into the form, skipping unknown keys.
// It returns the keys that could not be applied.
func ApplyValues(f *form.Form, values map[string]string) []string {
	var skipped []string
	for key, value := range values {
		if err := f.Update(key, value); err != nil {
			skipped = append(skipped, key)
		}
	}
	sort.Strings(skipped)
	return skipped
}
