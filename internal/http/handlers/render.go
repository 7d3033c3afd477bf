package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject principal if present
	if p := c.Locals("principal"); p != nil {
		data["Principal"] = p
	}
	return c.Render(tmpl, data)
}
