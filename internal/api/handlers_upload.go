package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salescharts/internal/loader"
	"github.com/terraincognita07/salescharts/internal/services"
)

const uploadFormField = "file"

// UploadCSV runs the upload pipeline for the file in the "file" form field.
func (handler *Handler) UploadCSV(c *fiber.Ctx) error {
	page := handler.variants[VariantUpload]
	messages := handler.currentMessages(c)

	header, err := c.FormFile(uploadFormField)
	if err != nil {
		header = nil
	}

	result, err := page.dashboard.Run(c.UserContext(), loader.UploadSource{Header: header})
	status := fiber.StatusOK
	notice := ""
	switch {
	case err == nil:
	case errors.Is(err, services.ErrLoadInProgress):
		status = fiber.StatusConflict
		notice = translateMessage(messages, "status.busy")
	case errors.Is(err, services.ErrChartApply):
		status = fiber.StatusInternalServerError
		notice = translateMessage(messages, "notice.upload_failed")
	default:
		status = fiber.StatusUnprocessableEntity
		notice = translateMessage(messages, "notice.upload_failed")
	}

	if acceptsJSON(c) {
		if status != fiber.StatusOK {
			return c.Status(status).JSON(fiber.Map{
				"error":  handler.newStatusView(c, result.Status).Text,
				"notice": notice,
			})
		}
		series, present := page.dashboard.Series()
		payload := fiber.Map{
			"status":     handler.newStatusView(c, result.Status),
			"transition": result.Transition,
			"series":     nil,
		}
		if present {
			payload["series"] = series
		}
		return c.JSON(payload)
	}

	c.Status(status)
	return handler.renderVariant(c, page, notice)
}
