package definition

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// check enforces the constraints struct tags cannot express.
func (s FormSpec) check() error {
	keys := make(map[string]struct{})
	for _, item := range s.Items {
		if item.Kind == string(form.KindTextField) {
			keys[item.Key] = struct{}{}
		}
	}

	for idx, item := range s.Items {
		switch form.ItemKind(item.Kind) {
		case form.KindIcon, form.KindImage:
			if item.Name == "" {
				return fmt.Errorf("item %d: %s requires a name", idx, item.Kind)
			}
		case form.KindAttributedText:
			if item.Text == nil {
				return fmt.Errorf("item %d: attributedText requires text", idx)
			}
		case form.KindTextField:
			for _, rule := range item.Validators {
				if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
					return fmt.Errorf("item %d: %s min %d exceeds max %d", idx, rule.Kind, *rule.Min, *rule.Max)
				}
				if rule.Kind == string(validators.KindMatch) {
					if _, ok := keys[rule.Other]; !ok {
						return fmt.Errorf("item %d: match references unknown key %q", idx, rule.Other)
					}
				}
			}
		}
	}
	return nil
}

// Build constructs the form.
func (s FormSpec) Build() *form.Form {
	items := make([]*form.Item, 0, len(s.Items))
	for _, spec := range s.Items {
		items = append(items, spec.build())
	}
	f := form.New(s.Title, items...)
	f.ContinueTitle = s.ContinueTitle
	return f
}

func (s ItemSpec) build() *form.Item {
	switch form.ItemKind(s.Kind) {
	case form.KindIcon:
		item := form.NewIcon(s.Name, s.Tint)
		s.applyTitle(item)
		return item
	case form.KindImage:
		item := form.NewImage(s.Name, s.Tint)
		s.applyTitle(item)
		return item
	case form.KindAttributedText:
		item := form.NewAttributedText(s.Text.RichText(), s.Background)
		s.applyTitle(item)
		return item
	}

	rules := make([]validators.Rule, 0, len(s.Validators))
	for _, rule := range s.Validators {
		rules = append(rules, rule.Rule())
	}
	textType := form.TextNormal
	if s.Secure {
		textType = form.TextSecure
	}
	return form.NewTextField(form.TextFieldConfig{
		Title:       s.Title,
		Placeholder: s.Placeholder,
		Value:       s.Value,
		UI:          s.ui(),
		Validators:  rules,
		Blocked:     s.Blocked,
		IconName:    s.Icon,
		Key:         s.Key,
		TextType:    textType,
		ExtraInfo:   s.ExtraInfo,
	})
}

func (s ItemSpec) applyTitle(item *form.Item) {
	if s.Title != "" {
		item.Title = s.Title
	}
}

func (s ItemSpec) ui() form.UIProperties {
	ui := form.TextCellProperties
	if s.Keyboard != "" {
		ui.Keyboard = form.KeyboardKind(s.Keyboard)
	}
	if s.Tint != "" {
		ui.Tint = s.Tint
	}
	return ui
}
