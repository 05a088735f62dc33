package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// Render converts record details from markdown to HTML for the detail
// panel. On a conversion error the raw text is shown escaped instead.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
