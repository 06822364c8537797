// Package richtext models the small amount of text formatting the form engine
// needs: runs of text with a font weight and a paragraph alignment. Messages
// produced by validators and the combined form error are built with it so
// renderers can decide how to present emphasis (bold field names, centered
// summaries) without the engine knowing about fonts or markup.
package richtext

import (
	"html"
	"strings"
)

// Weight is the font weight applied to a run.
type Weight string

const (
	WeightLight   Weight = "light"
	WeightRegular Weight = "regular"
	WeightMedium  Weight = "medium"
	WeightBold    Weight = "bold"
)

// Alignment is the paragraph alignment of a Text.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// DefaultSize is the point size used when a run does not set one.
const DefaultSize = 16

// Span is a run of text sharing a weight and size.
type Span struct {
	Text   string  `json:"text"`
	Weight Weight  `json:"weight"`
	Size   float64 `json:"size,omitempty"`
}

// Text is an ordered list of spans plus paragraph alignment. The zero value is
// an empty left aligned text ready for use.
type Text struct {
	Spans     []Span    `json:"spans,omitempty"`
	Alignment Alignment `json:"alignment,omitempty"`
}

// New returns an empty text.
func New() *Text {
	return &Text{}
}

// Plain returns a text holding a single regular run.
func Plain(value string) *Text {
	return New().Normal(value)
}

// Bold appends a bold run and returns t for chaining.
func (t *Text) Bold(value string) *Text {
	return t.append(value, WeightBold, 0)
}

// Normal appends a regular run and returns t for chaining.
func (t *Text) Normal(value string) *Text {
	return t.append(value, WeightRegular, 0)
}

// Medium appends a medium run and returns t for chaining.
func (t *Text) Medium(value string) *Text {
	return t.append(value, WeightMedium, 0)
}

// Light appends a light run and returns t for chaining.
func (t *Text) Light(value string) *Text {
	return t.append(value, WeightLight, 0)
}

// Sized appends a run with an explicit point size.
func (t *Text) Sized(value string, weight Weight, size float64) *Text {
	return t.append(value, weight, size)
}

// Align sets the paragraph alignment and returns t for chaining.
func (t *Text) Align(alignment Alignment) *Text {
	t.Alignment = alignment
	return t
}

// Append copies the spans of other onto t.
func (t *Text) Append(other *Text) *Text {
	if other == nil {
		return t
	}
	t.Spans = append(t.Spans, other.Spans...)
	return t
}

// Clone returns a deep copy of t.
func (t *Text) Clone() *Text {
	if t == nil {
		return nil
	}
	return &Text{
		Spans:     append([]Span(nil), t.Spans...),
		Alignment: t.Alignment,
	}
}

// Len reports the number of runes across all spans.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, span := range t.Spans {
		n += len([]rune(span.Text))
	}
	return n
}

// String flattens the text, discarding formatting.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, span := range t.Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Lines splits the flattened text on newlines.
func (t *Text) Lines() []string {
	if t == nil || len(t.Spans) == 0 {
		return nil
	}
	return strings.Split(t.String(), "\n")
}

// HTML renders the text as escaped inline markup. Bold and medium runs become
// <strong>, light runs <small>; newlines become <br>.
func (t *Text) HTML() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, span := range t.Spans {
		escaped := strings.ReplaceAll(html.EscapeString(span.Text), "\n", "<br>")
		switch span.Weight {
		case WeightBold, WeightMedium:
			b.WriteString("<strong>")
			b.WriteString(escaped)
			b.WriteString("</strong>")
		case WeightLight:
			b.WriteString("<small>")
			b.WriteString(escaped)
			b.WriteString("</small>")
		default:
			b.WriteString(escaped)
		}
	}
	return b.String()
}

func (t *Text) append(value string, weight Weight, size float64) *Text {
	if value == "" {
		return t
	}
	t.Spans = append(t.Spans, Span{Text: value, Weight: weight, Size: size})
	return t
}
