package api

import "github.com/gofiber/fiber/v2"

// ShowSurface serves the chart document drawn on a surface. A blank surface
// answers 204.
func (handler *Handler) ShowSurface(c *fiber.Ctx) error {
	surface, ok := handler.surfaces.Lookup(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "surface not found")
	}

	document, ok := surface.Document()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Send(document)
}
