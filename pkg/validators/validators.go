// Package validators implements the field rules a form applies to text input.
// Rules are plain values with a Kind discriminant; Validate is a pure function
// of the input string that returns the value unchanged or a *Failure carrying a
// formatted message. Every rule except Required accepts the empty string so
// required-ness stays a separate, explicit rule.
package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/richtext"
)

// Kind identifies a rule variant.
type Kind string

const (
	KindEmail     Kind = "email"
	KindPassword  Kind = "password"
	KindRequired  Kind = "requiredField"
	KindCharCount Kind = "charCount"
	KindNumber    Kind = "numberField"
	KindDate      Kind = "date"
	KindMatch     Kind = "match"
)

const (
	defaultMinChars   = 1
	defaultMaxChars   = 50
	defaultDateLayout = "01/02/2006"
	defaultDateField  = "Date"
	defaultPassword   = "Password"
)

var (
	emailPattern  = regexp.MustCompile(`(?i)^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)
	numberPattern = regexp.MustCompile(`^(?:\d{10}|(?:\(?\d{3}\)?)?[ .-]?\d{3}[ .-]\d{4})$`)
)

// Rule is a single validation rule. Only the fields relevant to Kind are
// consulted; use the constructors rather than building literals by hand.
type Rule struct {
	Kind   Kind           `json:"kind"`
	Field  string         `json:"field,omitempty"`
	Min    *int           `json:"min,omitempty"`
	Max    *int           `json:"max,omitempty"`
	Layout string         `json:"layout,omitempty"`
	Policy PasswordPolicy `json:"policy,omitempty"`
	Other  string         `json:"other,omitempty"`
}

// Peers resolves the current value of another field by key. Cross-field rules
// (KindMatch) use it; other rules ignore it.
type Peers func(key string) string

// Failure is returned when a rule rejects a value.
type Failure struct {
	Kind    Kind
	Field   string
	Message *richtext.Text
}

func (f *Failure) Error() string {
	if f == nil || f.Message == nil {
		return "validation failed"
	}
	return f.Message.String()
}

// Email accepts local@domain.tld addresses.
func Email() Rule {
	return Rule{Kind: KindEmail}
}

// Password applies the zero PasswordPolicy, which accepts any value.
func Password(field string) Rule {
	return Rule{Kind: KindPassword, Field: field}
}

// PasswordWithPolicy enforces policy on non-empty values.
func PasswordWithPolicy(field string, policy PasswordPolicy) Rule {
	return Rule{Kind: KindPassword, Field: field, Policy: policy}
}

// Required rejects the empty string.
func Required(field string) Rule {
	return Rule{Kind: KindRequired, Field: field}
}

// CharCount bounds the length of non-empty values. Missing bounds default to
// 1 and 50 characters.
func CharCount(min, max *int, field string) Rule {
	return Rule{Kind: KindCharCount, Field: field, Min: min, Max: max}
}

// Limit is a helper for CharCount bounds.
func Limit(n int) *int {
	return &n
}

// Number accepts North American phone numbers.
func Number(field string) Rule {
	return Rule{Kind: KindNumber, Field: field}
}

// Date accepts values parseable with the Go time layout.
func Date(layout, field string) Rule {
	return Rule{Kind: KindDate, Field: field, Layout: layout}
}

// Match requires the value to equal the value of the field keyed other.
func Match(other, field string) Rule {
	return Rule{Kind: KindMatch, Field: field, Other: other}
}

// Validate runs the rule without access to other fields.
func (r Rule) Validate(value string) (string, error) {
	return r.ValidateWith(value, nil)
}

// ValidateWith runs the rule, resolving sibling fields through peers.
func (r Rule) ValidateWith(value string, peers Peers) (string, error) {
	switch r.Kind {
	case KindRequired:
		if value == "" {
			return "", r.fail(richtext.New().Bold(r.Field).Normal(" is required"))
		}
		return value, nil
	case KindEmail:
		if value == "" || emailPattern.MatchString(value) {
			return value, nil
		}
		return "", r.fail(richtext.New().Normal("Invalid ").Bold("email address"))
	case KindPassword:
		if value == "" {
			return value, nil
		}
		if msg := r.Policy.check(r.fieldOr(defaultPassword), value); msg != nil {
			return "", r.fail(msg)
		}
		return value, nil
	case KindCharCount:
		if value == "" || r.withinBounds(value) {
			return value, nil
		}
		return "", r.fail(r.charCountMessage())
	case KindNumber:
		if value == "" || numberPattern.MatchString(value) {
			return value, nil
		}
		return "", r.fail(richtext.New().Normal("Invalid ").Bold(r.Field))
	case KindDate:
		if value == "" {
			return value, nil
		}
		layout := r.layout()
		if _, err := time.Parse(layout, value); err == nil {
			return value, nil
		}
		return "", r.fail(richtext.New().Bold(r.fieldOr(defaultDateField)).Normal(" format should be " + DisplayLayout(layout)))
	case KindMatch:
		if value == "" {
			return value, nil
		}
		var other string
		if peers != nil {
			other = peers(r.Other)
		}
		if value == other {
			return value, nil
		}
		return "", r.fail(richtext.New().Bold(r.Field).Normal(" does not match"))
	default:
		return "", r.fail(richtext.New().Normal(fmt.Sprintf("Unknown rule %q for ", r.Kind)).Bold(r.Field))
	}
}

func (r Rule) fail(message *richtext.Text) *Failure {
	return &Failure{Kind: r.Kind, Field: r.Field, Message: message}
}

func (r Rule) fieldOr(fallback string) string {
	if r.Field != "" {
		return r.Field
	}
	return fallback
}

func (r Rule) layout() string {
	if strings.TrimSpace(r.Layout) == "" {
		return defaultDateLayout
	}
	return r.Layout
}

func (r Rule) withinBounds(value string) bool {
	// single-line values only
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	lo, hi := defaultMinChars, defaultMaxChars
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	n := utf8.RuneCountInString(value)
	return lo <= hi && n >= lo && n <= hi
}

func (r Rule) charCountMessage() *richtext.Text {
	field := r.Field
	switch {
	case r.Min != nil && r.Max != nil && *r.Min == *r.Max:
		return richtext.New().Bold(field).Normal(" should be exactly " + strconv.Itoa(*r.Min) + " characters")
	case r.Min != nil && r.Max != nil:
		return richtext.New().Bold(field).Normal(fmt.Sprintf(" should be between %d and %d characters", *r.Min, *r.Max))
	case r.Min != nil:
		return richtext.New().Bold(field).Normal(" should be at least " + strconv.Itoa(*r.Min) + " characters")
	case r.Max != nil:
		return richtext.New().Bold(field).Normal(" should be no more than " + strconv.Itoa(*r.Max) + " characters")
	default:
		return richtext.New().Normal("Check ").Bold(field)
	}
}

var layoutDisplay = strings.NewReplacer(
	"2006", "YYYY",
	"January", "MMMM",
	"Jan", "MMM",
	"Monday", "dddd",
	"Mon", "ddd",
	"01", "MM",
	"02", "DD",
	"15", "HH",
	"03", "hh",
	"04", "mm",
	"05", "ss",
	"06", "YY",
	"PM", "AM/PM",
)

// DisplayLayout converts a Go reference layout into the conventional
// placeholder form shown to users, e.g. "01/02/2006" becomes "MM/DD/YYYY".
func DisplayLayout(layout string) string {
	return layoutDisplay.Replace(layout)
}
