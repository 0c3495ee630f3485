package api

import "github.com/gofiber/fiber/v2"

// ShowServerPage shows the load failure notice for as long as the last load
// of the server file failed.
func (handler *Handler) ShowServerPage(c *fiber.Ctx) error {
	page := handler.variants[VariantServer]
	notice := ""
	if page.dashboard.Status().Failed() {
		notice = translateMessage(handler.currentMessages(c), "notice.load_failed")
	}
	return handler.renderVariant(c, page, notice)
}

func (handler *Handler) ShowUploadPage(c *fiber.Ctx) error {
	return handler.renderVariant(c, handler.variants[VariantUpload], "")
}

// renderVariant draws the page of one variant. A non-empty notice is shown
// as a blocking alert.
func (handler *Handler) renderVariant(c *fiber.Ctx, page variant, notice string) error {
	status := page.dashboard.Status()

	_, hasChart := handler.surfaceDocument(page.surfaceID)
	data := fiber.Map{
		"Variant":    page.name,
		"Status":     handler.newStatusView(c, status),
		"SurfaceID":  page.surfaceID,
		"HasChart":   hasChart,
		"ChartRev":   status.UpdatedAt.UnixNano(),
		"Notice":     notice,
		"AcceptFile": ".csv",
	}
	return handler.render(c, page.page, data)
}

func (handler *Handler) surfaceDocument(surfaceID string) ([]byte, bool) {
	surface, ok := handler.surfaces.Lookup(surfaceID)
	if !ok {
		return nil, false
	}
	return surface.Document()
}
