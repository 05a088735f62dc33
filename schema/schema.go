// Package schema loads the edit-form field definitions from an external
// CSV so a non-programmer can change the questions without touching source.
// The file is read once at process start and validated eagerly: a bad
// widget kind stops the boot instead of panicking at render time.
package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Widget identifies the form control a field is rendered with.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetDate     Widget = "date"
	WidgetEmail    Widget = "email"
	WidgetSelect   Widget = "select"
	WidgetRadio    Widget = "radio"
)

// excludedFields are internal columns that must never surface as form
// questions, whatever the CSV says.
var excludedFields = map[string]bool{
	"name":             true,
	"owner":            true,
	"done":             true,
	"last_modified_by": true,
}

// Field is one form question from the schema file.
type Field struct {
	Name        string
	Type        string
	Question    string
	Placeholder string
	Widget      Widget
	Options     []string // select/radio only
}

// Schema is the ordered field list loaded at startup.
type Schema struct {
	Fields []Field

	byName map[string]int
}

// Load reads and validates a schema CSV. Expected columns per row:
// field name, field type, question, placeholder, widget kind, and an
// optional pipe-delimited option list. The first row is a header.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schema: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads schema rows from r. Split out from Load for tests.
func Parse(r io.Reader) (*Schema, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // options column may be absent

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("schema: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("schema: file is empty")
	}

	sch := &Schema{byName: make(map[string]int)}

	// rows[0] is the header
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < 5 {
			return nil, fmt.Errorf("schema: line %d: expected at least 5 columns, got %d", line, len(row))
		}

		field := Field{
			Name:        strings.TrimSpace(row[0]),
			Type:        strings.TrimSpace(row[1]),
			Question:    strings.TrimSpace(row[2]),
			Placeholder: strings.TrimSpace(row[3]),
			Widget:      Widget(strings.TrimSpace(strings.ToLower(row[4]))),
		}
		if field.Name == "" {
			return nil, fmt.Errorf("schema: line %d: missing field name", line)
		}
		if excludedFields[field.Name] {
			continue
		}
		if _, dup := sch.byName[field.Name]; dup {
			return nil, fmt.Errorf("schema: line %d: duplicate field %q", line, field.Name)
		}

		switch field.Widget {
		case WidgetText, WidgetTextarea, WidgetDate, WidgetEmail:
			// no options
		case WidgetSelect, WidgetRadio:
			if len(row) < 6 || strings.TrimSpace(row[5]) == "" {
				return nil, fmt.Errorf("schema: line %d: widget %q for field %q requires an option list", line, field.Widget, field.Name)
			}
			for _, opt := range strings.Split(row[5], "|") {
				opt = strings.TrimSpace(opt)
				if opt != "" {
					field.Options = append(field.Options, opt)
				}
			}
			if len(field.Options) == 0 {
				return nil, fmt.Errorf("schema: line %d: widget %q for field %q has an empty option list", line, field.Widget, field.Name)
			}
		default:
			return nil, fmt.Errorf("schema: line %d: unknown widget kind %q for field %q", line, field.Widget, field.Name)
		}

		sch.byName[field.Name] = len(sch.Fields)
		sch.Fields = append(sch.Fields, field)
	}

	return sch, nil
}

// Field looks up a question by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}
