package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `field,type,question,placeholder,widget,options
contact_email,string,Email Address,you@example.com,email,
favorite_dataformat,string,Select your favorite data format...,,select,xlsx|csv|parquet|json|xml
entry_date,date,Date of Entry,,date,
yesno,string,Yes or No?,,radio,Yes|No|Maybe?
notes,string,Anything else?,Free text,textarea,
source_url,string,Where does this data come from?,https://,text,
`

func TestParse(t *testing.T) {
	sch, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, sch.Fields, 6)

	email, ok := sch.Field("contact_email")
	require.True(t, ok)
	assert.Equal(t, WidgetEmail, email.Widget)
	assert.Equal(t, "Email Address", email.Question)
	assert.Equal(t, "you@example.com", email.Placeholder)

	sel, ok := sch.Field("favorite_dataformat")
	require.True(t, ok)
	assert.Equal(t, WidgetSelect, sel.Widget)
	assert.Equal(t, []string{"xlsx", "csv", "parquet", "json", "xml"}, sel.Options)

	radio, ok := sch.Field("yesno")
	require.True(t, ok)
	assert.Equal(t, []string{"Yes", "No", "Maybe?"}, radio.Options)

	// field order follows the file
	assert.Equal(t, "contact_email", sch.Fields[0].Name)
	assert.Equal(t, "source_url", sch.Fields[5].Name)
}

func TestParseUnknownWidget(t *testing.T) {
	csv := "field,type,question,placeholder,widget,options\n" +
		"color,string,Pick a color,,swatch,\n"

	_, err := Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown widget kind")
	assert.Contains(t, err.Error(), "swatch")
}

func TestParseSelectWithoutOptions(t *testing.T) {
	csv := "field,type,question,placeholder,widget,options\n" +
		"format,string,Pick a format,,select,\n"

	_, err := Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an option list")
}

func TestParseSkipsInternalFields(t *testing.T) {
	csv := "field,type,question,placeholder,widget,options\n" +
		"owner,string,Who owns this?,,text,\n" +
		"done,bool,Done yet?,,text,\n" +
		"last_modified_by,string,Touched by,,text,\n" +
		"notes,string,Notes,,text,\n"

	sch, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sch.Fields, 1)
	assert.Equal(t, "notes", sch.Fields[0].Name)

	_, ok := sch.Field("owner")
	assert.False(t, ok)
}

func TestParseDuplicateField(t *testing.T) {
	csv := "field,type,question,placeholder,widget,options\n" +
		"notes,string,Notes,,text,\n" +
		"notes,string,Notes again,,text,\n"

	_, err := Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	sch, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sch.Fields, 6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
