package contact

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/datacat/schema"
	"github.com/sahilchouksey/datacat/utils/forms"
	"github.com/sahilchouksey/datacat/utils/response"
	"github.com/sahilchouksey/datacat/utils/validation"
)

// ContactHandler serves per-field inline validation fragments. This is
// presentation-only feedback: a failing value is still storable through
// the normal create/update path.
type ContactHandler struct {
	schema *schema.Schema
}

// NewContactHandler creates a new contact handler
func NewContactHandler(sch *schema.Schema) *ContactHandler {
	return &ContactHandler{schema: sch}
}

// ValidateField re-renders one schema widget marked valid or invalid for
// the submitted value. Unknown field names get the not-found page.
func (h *ContactHandler) ValidateField(c *fiber.Ctx) error {
	name := c.Params("field")
	field, ok := h.schema.Field(name)
	if !ok {
		return response.NotFoundPage(c)
	}

	value := c.FormValue(field.Name)

	view := forms.NewFieldView(field, value)
	view.Validated = true
	view.Valid = true

	if field.Widget == schema.WidgetEmail && !validation.ValidateEmail(value) {
		view.Valid = false
		view.Error = "Error :("
	}

	return c.Render("partials/field_widget", view)
}
