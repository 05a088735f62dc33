package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response represents a standardized JSON response for the few
// machine-facing endpoints (health check, error fallbacks).
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success returns a successful JSON response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Redirect issues the 303 used after every form POST and auth failure,
// so the browser re-fetches with GET.
func Redirect(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// NotFoundPage renders the generic "not found" page content with a 404
// status. Used both for unknown routes and for record lookups by an id
// that does not exist in the caller's view.
func NotFoundPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
		"Title": "Oh no!",
	}, "layouts/main")
}

// ServerError returns a 500 JSON envelope; handlers surface their own
// HTML for every expected failure, so anything landing here is a bug.
func ServerError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}
