package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salescharts/internal/models"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func statusTranslationKey(state models.LoadState) string {
	switch state {
	case models.LoadStateLoading:
		return "status.loading"
	case models.LoadStateLoaded:
		return "status.loaded"
	case models.LoadStateFailed:
		return "status.failed"
	default:
		return "status.idle"
	}
}

// statusText renders the status indicator line in the request language.
func (handler *Handler) statusText(c *fiber.Ctx, status models.Status) string {
	language := currentLanguage(c)
	if status.State == models.LoadStateFailed {
		return handler.i18n.Translatef(language, statusTranslationKey(status.State), status.Detail)
	}
	return handler.i18n.Translate(language, statusTranslationKey(status.State))
}

func (handler *Handler) newStatusView(c *fiber.Ctx, status models.Status) statusView {
	return statusView{
		State:    string(status.State),
		Text:     handler.statusText(c, status),
		FileName: status.FileName,
		Rows:     status.Rows,
	}
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

// currentMessages falls back to the default language when the language
// middleware did not run.
func (handler *Handler) currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return handler.i18n.Messages(handler.i18n.DefaultLanguage())
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := handler.currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}
	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = c.Path()
	}
	return data
}
