package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStatus(c *fiber.Ctx) error {
	page, ok := handler.variants[c.Params("variant")]
	if !ok {
		return apiError(c, fiber.StatusNotFound, "unknown variant")
	}

	_, hasChart := handler.surfaceDocument(page.surfaceID)
	payload := fiber.Map{
		"variant": page.name,
		"surface": page.surfaceID,
		"status":  handler.newStatusView(c, page.dashboard.Status()),
		"chart":   hasChart,
		"series":  nil,
	}
	if series, present := page.dashboard.Series(); present {
		payload["series"] = series
	}
	return c.JSON(payload)
}
