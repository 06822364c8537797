package validators

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/richtext"
)

// PasswordPolicy describes the strength requirements enforced by a password
// rule. The zero value enforces nothing.
type PasswordPolicy struct {
	MinLength        int  `json:"minLength,omitempty" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase,omitempty" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase,omitempty" yaml:"requireLowercase"`
	RequireDigit     bool `json:"requireDigit,omitempty" yaml:"requireDigit"`
	RequireSpecial   bool `json:"requireSpecial,omitempty" yaml:"requireSpecial"`
}

// AccountPasswordPolicy is the policy applied to new accounts. The backend's
// identity provider refuses passwords shorter than six characters.
func AccountPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6}
}

// IsZero reports whether the policy enforces anything.
func (p PasswordPolicy) IsZero() bool {
	return p == PasswordPolicy{}
}

type charClasses struct {
	upper   bool
	lower   bool
	digit   bool
	special bool
}

func classify(value string) charClasses {
	var c charClasses
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r):
			c.special = true
		}
	}
	return c
}

// check returns the first unmet requirement as a message, or nil.
func (p PasswordPolicy) check(field, value string) *richtext.Text {
	if p.IsZero() {
		return nil
	}
	if p.MinLength > 0 && utf8.RuneCountInString(value) < p.MinLength {
		return richtext.New().Bold(field).Normal(" should be at least " + strconv.Itoa(p.MinLength) + " characters")
	}
	classes := classify(value)
	switch {
	case p.RequireUppercase && !classes.upper:
		return richtext.New().Bold(field).Normal(" should contain an uppercase letter")
	case p.RequireLowercase && !classes.lower:
		return richtext.New().Bold(field).Normal(" should contain a lowercase letter")
	case p.RequireDigit && !classes.digit:
		return richtext.New().Bold(field).Normal(" should contain a number")
	case p.RequireSpecial && !classes.special:
		return richtext.New().Bold(field).Normal(" should contain a special character")
	}
	return nil
}
