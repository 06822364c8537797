package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/richtext"
)

var (
	// ErrUnknownKey is returned when an edit targets a key no text field owns.
	ErrUnknownKey = errors.New("form: unknown field key")
	// ErrBlocked is returned when an edit targets a non-interactive field.
	ErrBlocked = errors.New("form: field is not editable")
)

// Result is a submittable (key, value) pair. Value is nil until the field is
// edited.
type Result struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Row pairs an item with the rendering kind the UI layer must produce.
type Row struct {
	Item     *Item    `json:"item"`
	Cell     CellKind `json:"cell"`
	Position Position `json:"position"`
}

// Form is an ordered set of items and the results derived from them. A form is
// owned by a single screen and is not safe for concurrent use.
type Form struct {
	Title         string
	ContinueTitle string

	items   []*Item
	results []*Result
}

// New constructs a form with the supplied items.
func New(title string, items ...*Item) *Form {
	f := &Form{Title: title}
	f.SetItems(items...)
	return f
}

// SetItems replaces the items and re-derives the results: one nil valued
// result per submittable item, in item order.
func (f *Form) SetItems(items ...*Item) {
	f.items = make([]*Item, 0, len(items))
	f.results = make([]*Result, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		f.items = append(f.items, item)
		if key, ok := item.Key(); ok {
			f.results = append(f.results, &Result{Key: key})
		}
	}
}

// Items returns the items in order.
func (f *Form) Items() []*Item {
	return f.items
}

// Results returns the derived results in order.
func (f *Form) Results() []*Result {
	return f.results
}

// Item returns the text field item owning key.
func (f *Form) Item(key string) (*Item, bool) {
	for _, item := range f.items {
		if k, ok := item.Key(); ok && k == key {
			return item, true
		}
	}
	return nil, false
}

// Result returns the result for key.
func (f *Form) Result(key string) (*Result, bool) {
	for _, result := range f.results {
		if result.Key == key {
			return result, true
		}
	}
	return nil, false
}

// Update routes an edit from the UI layer into the form: the field value and
// its result are both set.
func (f *Form) Update(key, value string) error {
	item, ok := f.Item(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if item.Field.Blocked {
		return fmt.Errorf("%w: %q", ErrBlocked, key)
	}
	item.Field.Value = String(value)
	for _, result := range f.results {
		if result.Key == key {
			result.Value = value
		}
	}
	return nil
}

// ResetValidity marks the field owning key as valid again. The UI layer calls
// it when the field regains focus so the inline error indicator clears.
func (f *Form) ResetValidity(key string) {
	if item, ok := f.Item(key); ok {
		item.Field.Valid = true
		item.Field.Message = nil
	}
}

// IsValid validates every text field. Each field stops at its first failing
// validator; the returned message joins the failures one per line, center
// aligned, and is nil when the form is valid. Validity flags are updated as a
// side effect.
func (f *Form) IsValid() (bool, *richtext.Text) {
	valid := true
	var message *richtext.Text

	peers := f.peerValue
	for _, item := range f.items {
		if item.Kind != KindTextField || item.Field == nil {
			continue
		}
		failure := item.Field.Check(peers)
		if failure != nil {
			if message == nil {
				message = failure
			} else {
				message.Append(richtext.Plain("\n")).Append(failure)
			}
		}
		if !item.Field.Valid {
			valid = false
		}
	}
	return valid, message
}

// DictResults maps each result key to its value. Results without a value are
// omitted; later keys win on collision. No validation is performed.
func (f *Form) DictResults() map[string]any {
	out := make(map[string]any, len(f.results))
	for _, result := range f.results {
		if result.Value == nil {
			delete(out, result.Key)
			continue
		}
		out[result.Key] = result.Value
	}
	return out
}

// Rows lists the items with their rendering kind and assigns each item its
// position in the single section.
func (f *Form) Rows() []Row {
	rows := make([]Row, 0, len(f.items))
	for idx, item := range f.items {
		pos := Position{Section: 0, Row: idx}
		item.Position = &pos
		rows = append(rows, Row{Item: item, Cell: item.Cell(), Position: pos})
	}
	return rows
}

// Next returns the position of the first editable text entry row after pos.
func (f *Form) Next(pos Position) (Position, bool) {
	if pos.Section != 0 {
		return Position{}, false
	}
	for idx := pos.Row + 1; idx < len(f.items); idx++ {
		item := f.items[idx]
		if item.Cell() == CellTextField && item.Field != nil && !item.Field.Blocked {
			return Position{Section: 0, Row: idx}, true
		}
	}
	return Position{}, false
}

// InvalidKeys lists the keys of fields flagged invalid by the last IsValid.
func (f *Form) InvalidKeys() []string {
	var keys []string
	for _, item := range f.items {
		if key, ok := item.Key(); ok && !item.Field.Valid {
			keys = append(keys, key)
		}
	}
	return keys
}

func (f *Form) peerValue(key string) string {
	if item, ok := f.Item(key); ok {
		return item.Field.Text()
	}
	return ""
}
