// Package definition loads declarative form definitions from YAML or JSON
// files and builds form.Form values from them.
//
// A definition file holds one or more forms keyed by id:
//
//	forms:
//	  login:
//	    title: Login
//	    continueTitle: Login
//	    items:
//	      - kind: textField
//	        title: Email
//	        key: username
//	        keyboard: emailAddress
//	        validators:
//	          - kind: email
//	          - kind: requiredField
//	            field: User Email
package definition

import (
	"github.com/goliatone/go-formkit/pkg/richtext"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// Document is the top level of a definition file.
type Document struct {
	Forms map[string]FormSpec `json:"forms" yaml:"forms" validate:"required,min=1,dive"`
}

// FormSpec declares a single form.
type FormSpec struct {
	Title         string     `json:"title" yaml:"title" validate:"required"`
	ContinueTitle string     `json:"continueTitle,omitempty" yaml:"continueTitle"`
	Items         []ItemSpec `json:"items" yaml:"items" validate:"required,min=1,dive"`
}

// ItemSpec declares one row. Which attributes apply depends on Kind.
type ItemSpec struct {
	Kind        string     `json:"kind" yaml:"kind" validate:"required,oneof=textField icon image attributedText"`
	Title       string     `json:"title,omitempty" yaml:"title" validate:"required_if=Kind textField"`
	Key         string     `json:"key,omitempty" yaml:"key" validate:"required_if=Kind textField"`
	Placeholder string     `json:"placeholder,omitempty" yaml:"placeholder"`
	Value       *string    `json:"value,omitempty" yaml:"value"`
	Keyboard    string     `json:"keyboard,omitempty" yaml:"keyboard" validate:"omitempty,oneof=default emailAddress phonePad decimalPad"`
	Icon        string     `json:"icon,omitempty" yaml:"icon"`
	Secure      bool       `json:"secure,omitempty" yaml:"secure"`
	Blocked     bool       `json:"blocked,omitempty" yaml:"blocked"`
	ExtraInfo   string     `json:"extraInfo,omitempty" yaml:"extraInfo"`
	Tint        string     `json:"tint,omitempty" yaml:"tint"`
	Name        string     `json:"name,omitempty" yaml:"name"`
	Text        *TextSpec  `json:"text,omitempty" yaml:"text"`
	Background  string     `json:"background,omitempty" yaml:"background"`
	Validators  []RuleSpec `json:"validators,omitempty" yaml:"validators" validate:"dive"`
}

// TextSpec declares rich text for attributedText rows.
type TextSpec struct {
	Alignment string     `json:"alignment,omitempty" yaml:"alignment" validate:"omitempty,oneof=left center right"`
	Spans     []SpanSpec `json:"spans" yaml:"spans" validate:"required,min=1,dive"`
}

// SpanSpec is one run of rich text.
type SpanSpec struct {
	Text   string  `json:"text" yaml:"text"`
	Weight string  `json:"weight,omitempty" yaml:"weight" validate:"omitempty,oneof=light regular medium bold"`
	Size   float64 `json:"size,omitempty" yaml:"size" validate:"gte=0"`
}

// RuleSpec declares a validator.
type RuleSpec struct {
	Kind   string                    `json:"kind" yaml:"kind" validate:"required,oneof=email password requiredField charCount numberField date match"`
	Field  string                    `json:"field,omitempty" yaml:"field"`
	Min    *int                      `json:"min,omitempty" yaml:"min" validate:"omitempty,gte=0"`
	Max    *int                      `json:"max,omitempty" yaml:"max" validate:"omitempty,gte=0"`
	Layout string                    `json:"layout,omitempty" yaml:"layout"`
	Other  string                    `json:"other,omitempty" yaml:"other" validate:"required_if=Kind match"`
	Policy validators.PasswordPolicy `json:"policy,omitempty" yaml:"policy"`
}

// Rule converts the spec into a validators.Rule.
func (s RuleSpec) Rule() validators.Rule {
	return validators.Rule{
		Kind:   validators.Kind(s.Kind),
		Field:  s.Field,
		Min:    s.Min,
		Max:    s.Max,
		Layout: s.Layout,
		Policy: s.Policy,
		Other:  s.Other,
	}
}

// RichText converts the spec into a richtext.Text.
func (s *TextSpec) RichText() *richtext.Text {
	if s == nil {
		return nil
	}
	text := richtext.New()
	for _, span := range s.Spans {
		weight := richtext.Weight(span.Weight)
		if weight == "" {
			weight = richtext.WeightRegular
		}
		text.Sized(span.Text, weight, span.Size)
	}
	if s.Alignment != "" {
		text.Align(richtext.Alignment(s.Alignment))
	}
	return text
}
