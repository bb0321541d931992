package localization

import (
	"errors"

	"langusta/core/langusta"
	"langusta/core/logger"
	"langusta/core/lookup"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for localizations.
type Handler struct {
	service *Service
	guard   fiber.Handler
}

// NewHandler creates a new HTTP handler. guard protects the write routes; nil leaves them open.
func NewHandler(service *Service, guard fiber.Handler) *Handler {
	if guard == nil {
		guard = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{service: service, guard: guard}
}

// LanguageRequest is the body of a language change.
type LanguageRequest struct {
	Language string `json:"language"`
}

// RegisterRoutes registers the localization routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/localization")
	group.Get("/status", h.HandleStatus)
	group.Post("/refresh", h.guard, h.HandleRefresh)
	group.Put("/language", h.guard, h.HandleChangeLanguage)
	group.Get("/:key", h.HandleLocalize)
}

// HandleLocalize resolves a key.
// @Summary Localize Key
// @Description Resolves a key in the active language. Repeated arg parameters fill the placeholders in order.
// @Tags localization
// @Produce json
// @Param key path string true "Localization key"
// @Param arg query []string false "Substitution arguments" collectionFormat(multi)
// @Success 200 {object} Value
// @Failure 400 {object} map[string]string "Argument mismatch"
// @Failure 404 {object} map[string]string "Key or language not found"
// @Router /localization/{key} [get]
func (h *Handler) HandleLocalize(c *fiber.Ctx) error {
	key := c.Params("key")

	var args []string
	for _, arg := range c.Context().QueryArgs().PeekMulti("arg") {
		args = append(args, string(arg))
	}

	value, err := h.service.Localize(key, args)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Debug("Lookup failed", zap.String("key", key), zap.Error(err))

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, lookup.ErrKeyNotFound), errors.Is(err, lookup.ErrLanguageNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, lookup.ErrArgumentMismatch):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "placeholder": lookup.PlaceholderFor(key)})
	}

	return c.JSON(value)
}

// HandleRefresh triggers a remote refresh.
// @Summary Refresh Localizations
// @Description Fetches the remote document and merges it when its version is newer. Failures are reported in the body, not the status.
// @Tags localization
// @Produce json
// @Success 200 {object} RefreshReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /localization/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.Refresh(c.Context())
	l.Info("Refresh requested",
		zap.String("outcome", string(report.Outcome)),
		zap.String("version", report.Version),
	)
	return c.JSON(report)
}

// HandleChangeLanguage switches the active language.
// @Summary Change Language
// @Description Switches the active language. The language must be one of the supported languages.
// @Tags localization
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "Language"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Unsupported language"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /localization/language [put]
func (h *Handler) HandleChangeLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.ChangeLanguage(req.Language); err != nil {
		if errors.Is(err, langusta.ErrConfig) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.service.logger, c).Info("Language changed", zap.String("language", req.Language))
	return c.JSON(fiber.Map{"language": req.Language})
}

// HandleStatus reports the active state.
// @Summary Localization Status
// @Description Returns the active version, language, supported languages and key counts.
// @Tags localization
// @Produce json
// @Success 200 {object} langusta.Snapshot
// @Router /localization/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}
