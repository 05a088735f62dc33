package forms

import "github.com/sahilchouksey/datacat/schema"

// FieldView is a schema field prepared for template rendering, carrying
// the current value and, for inline validation responses, the outcome.
type FieldView struct {
	Name        string
	Type        string
	Question    string
	Placeholder string
	Widget      string
	Options     []string
	Value       string
	Validated   bool
	Valid       bool
	Error       string
}

// NewFieldView builds the render model for one schema field
func NewFieldView(f schema.Field, value string) FieldView {
	return FieldView{
		Name:        f.Name,
		Type:        f.Type,
		Question:    f.Question,
		Placeholder: f.Placeholder,
		Widget:      string(f.Widget),
		Options:     f.Options,
		Value:       value,
	}
}
