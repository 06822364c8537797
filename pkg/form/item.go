package form

import (
	"github.com/goliatone/go-formkit/pkg/richtext"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// ItemKind discriminates the Item variants.
type ItemKind string

const (
	KindTextField      ItemKind = "textField"
	KindIcon           ItemKind = "icon"
	KindImage          ItemKind = "image"
	KindAttributedText ItemKind = "attributedText"
)

// CellKind is the rendering kind a row needs from the UI layer.
type CellKind string

const (
	CellTextField      CellKind = "textField"
	CellIcon           CellKind = "icon"
	CellImage          CellKind = "image"
	CellAttributedText CellKind = "attributedText"
)

// KeyboardKind hints which keyboard a text entry row should present.
type KeyboardKind string

const (
	KeyboardDefault KeyboardKind = "default"
	KeyboardEmail   KeyboardKind = "emailAddress"
	KeyboardPhone   KeyboardKind = "phonePad"
	KeyboardDecimal KeyboardKind = "decimalPad"
)

// TextType controls whether entry is echoed.
type TextType string

const (
	TextNormal TextType = "normal"
	TextSecure TextType = "secure"
)

// DefaultTint is the tint applied when none is configured.
const DefaultTint = "#000000"

// Position locates a row inside the rendered form.
type Position struct {
	Section int `json:"section"`
	Row     int `json:"row"`
}

// UIProperties carries rendering hints for an item.
type UIProperties struct {
	Tint     string       `json:"tint,omitempty"`
	Keyboard KeyboardKind `json:"keyboard,omitempty"`
	Cell     CellKind     `json:"cell,omitempty"`
}

// Preset UI properties for the common row types.
var (
	TextCellProperties           = UIProperties{Tint: DefaultTint, Keyboard: KeyboardDefault, Cell: CellTextField}
	EmailCellProperties          = UIProperties{Tint: DefaultTint, Keyboard: KeyboardEmail, Cell: CellTextField}
	NumberCellProperties         = UIProperties{Tint: DefaultTint, Keyboard: KeyboardPhone, Cell: CellTextField}
	MoneyCellProperties          = UIProperties{Tint: DefaultTint, Keyboard: KeyboardDecimal, Cell: CellTextField}
	AttributedTextCellProperties = UIProperties{Tint: DefaultTint, Keyboard: KeyboardDefault, Cell: CellAttributedText}
	IconProperties               = UIProperties{Tint: DefaultTint, Keyboard: KeyboardDefault, Cell: CellIcon}
	ImageProperties              = UIProperties{Tint: DefaultTint, Keyboard: KeyboardDefault, Cell: CellImage}
)

// TextField is the payload of a KindTextField item. It is the only variant
// that carries a value, validators, and a validity flag, and the only one that
// contributes to the form results (through Key).
type TextField struct {
	Key         string            `json:"key"`
	Value       *string           `json:"value,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	IconName    string            `json:"iconName,omitempty"`
	TextType    TextType          `json:"textType"`
	ExtraInfo   string            `json:"extraInfo,omitempty"`
	Blocked     bool              `json:"blocked,omitempty"`
	Validators  []validators.Rule `json:"validators,omitempty"`
	Valid       bool              `json:"valid"`
	// Message holds the failure reported by the last Check.
	Message     *richtext.Text    `json:"message,omitempty"`
}

// Text returns the current value, or "" when unset.
func (t *TextField) Text() string {
	if t == nil || t.Value == nil {
		return ""
	}
	return *t.Value
}

// Check runs the validators in order and stops at the first failure. It sets
// Valid and returns the failure message, center aligned, or nil.
func (t *TextField) Check(peers validators.Peers) *richtext.Text {
	value := t.Text()
	for _, rule := range t.Validators {
		if _, err := rule.ValidateWith(value, peers); err != nil {
			t.Valid = false
			message := richtext.Plain("Error")
			if failure, ok := err.(*validators.Failure); ok && failure.Message != nil {
				message = failure.Message.Clone()
			}
			t.Message = message.Align(richtext.AlignCenter)
			return t.Message.Clone()
		}
	}
	t.Valid = true
	t.Message = nil
	return nil
}

// Graphic is the payload of icon and image items.
type Graphic struct {
	Name string `json:"name"`
	Tint string `json:"tint,omitempty"`
}

// Info is the payload of attributed text items.
type Info struct {
	Text       *richtext.Text `json:"text,omitempty"`
	Background string         `json:"background,omitempty"`
}

// Item is one row of a form. Exactly one payload matches Kind: Field for text
// fields, Graphic for icons and images, Info for attributed text.
type Item struct {
	Kind     ItemKind     `json:"kind"`
	Position *Position    `json:"position,omitempty"`
	Title    string       `json:"title"`
	UI       UIProperties `json:"ui"`
	Field    *TextField   `json:"field,omitempty"`
	Graphic  *Graphic     `json:"graphic,omitempty"`
	Info     *Info        `json:"info,omitempty"`
}

// TextFieldConfig describes a text entry row.
type TextFieldConfig struct {
	Title       string
	Placeholder string
	Value       *string
	UI          UIProperties
	Validators  []validators.Rule
	Blocked     bool
	IconName    string
	Key         string
	TextType    TextType
	ExtraInfo   string
}

// NewTextField builds a text entry item. The placeholder falls back to the
// title; unset UI properties fall back to TextCellProperties.
func NewTextField(cfg TextFieldConfig) *Item {
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = cfg.Title
	}
	ui := cfg.UI
	if ui == (UIProperties{}) {
		ui = TextCellProperties
	}
	textType := cfg.TextType
	if textType == "" {
		textType = TextNormal
	}
	return &Item{
		Kind:  KindTextField,
		Title: cfg.Title,
		UI:    ui,
		Field: &TextField{
			Key:         cfg.Key,
			Value:       cloneString(cfg.Value),
			Placeholder: placeholder,
			IconName:    cfg.IconName,
			TextType:    textType,
			ExtraInfo:   cfg.ExtraInfo,
			Blocked:     cfg.Blocked,
			Validators:  append([]validators.Rule(nil), cfg.Validators...),
			Valid:       true,
		},
	}
}

// NewIcon builds an icon row.
func NewIcon(name, tint string) *Item {
	return &Item{
		Kind:    KindIcon,
		Title:   "Icon",
		UI:      IconProperties,
		Graphic: &Graphic{Name: name, Tint: tint},
	}
}

// NewImage builds a static image row.
func NewImage(name, tint string) *Item {
	return &Item{
		Kind:    KindImage,
		Title:   "Image",
		UI:      ImageProperties,
		Graphic: &Graphic{Name: name, Tint: tint},
	}
}

// NewAttributedText builds an informational rich text row.
func NewAttributedText(text *richtext.Text, background string) *Item {
	return &Item{
		Kind:  KindAttributedText,
		Title: "Info",
		UI:    AttributedTextCellProperties,
		Info:  &Info{Text: text, Background: background},
	}
}

// Key returns the submission key of a text field item.
func (i *Item) Key() (string, bool) {
	if i == nil || i.Kind != KindTextField || i.Field == nil {
		return "", false
	}
	return i.Field.Key, true
}

// Cell returns the rendering kind for the item, defaulting from Kind when the
// UI properties leave it unset.
func (i *Item) Cell() CellKind {
	if i.UI.Cell != "" {
		return i.UI.Cell
	}
	switch i.Kind {
	case KindIcon:
		return CellIcon
	case KindImage:
		return CellImage
	case KindAttributedText:
		return CellAttributedText
	default:
		return CellTextField
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

// String is a helper for prefilled values.
func String(value string) *string {
	return &value
}
