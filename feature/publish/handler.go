package publish

import (
	"errors"
	"strings"

	"langusta/core/datasource"
	"langusta/core/logger"
	"langusta/core/payload"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VersionHeader carries the published version in responses.
const VersionHeader = "X-Localization-Version"

// Handler handles HTTP requests for published documents.
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

// RegisterRoutes registers the publish routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/localizations")
	group.Get("/", h.HandleFetch)
	group.Put("/", h.guard, h.HandlePublish)
	group.Get("/history", h.HandleHistory)
	group.Delete("/history", h.guard, h.HandlePrune)
}

// HandleFetch serves the published document.
// @Summary Fetch Localizations
// @Description Returns the published document filtered by platform and language. Responds 204 when the client version is up to date.
// @Tags publish
// @Produce json
// @Param platform query string false "Platform overlay to keep (_, ios, an)"
// @Param language query string false "Language to keep; defaults to the best Accept-Language match"
// @Param version query string false "Client's current version"
// @Success 200 {object} map[string]interface{} "Localization document"
// @Success 204 "Client is up to date"
// @Failure 404 {object} map[string]string "Nothing published"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /localizations [get]
func (h *Handler) HandleFetch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := Request{
		Platform:       c.Query(datasource.ParamPlatform),
		Language:       c.Query(datasource.ParamLanguage),
		Version:        c.Query(datasource.ParamVersion),
		AcceptLanguage: c.Get(fiber.HeaderAcceptLanguage),
	}

	doc, err := h.service.Fetch(c.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNotPublished) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to serve localizations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if doc == nil {
		l.Debug("Client is up to date", zap.String("version", req.Version))
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(VersionHeader, doc.Version)
	if doc.Language != "" {
		c.Set(fiber.HeaderContentLanguage, doc.Language)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(doc.Body)
}

// HandlePublish uploads a new document.
// @Summary Publish Localizations
// @Description Validates and publishes a new document (JSON, or YAML with a yaml content type). The version must be newer unless force=true.
// @Tags publish
// @Accept json
// @Produce json
// @Param force query boolean false "Publish even if the version is not newer"
// @Success 201 {object} Published
// @Failure 400 {object} map[string]string "Invalid document"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Version not newer"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /localizations [put]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data := c.Body()
	if strings.Contains(c.Get(fiber.HeaderContentType), "yaml") {
		converted, err := payload.FromYAML(data)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		data = converted
	}

	result, err := h.service.Publish(c.Context(), data, c.QueryBool("force"))
	if err != nil {
		switch {
		case errors.Is(err, payload.ErrDecode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNotNewer):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to publish localizations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Published localizations", zap.String("version", result.Version))
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleHistory lists archived revisions.
// @Summary List Archived Revisions
// @Description Lists archived documents, newest version first.
// @Tags publish
// @Produce json
// @Success 200 {array} Revision
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /localizations/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	revisions, err := h.service.History(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list archive", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if revisions == nil {
		revisions = []Revision{}
	}
	return c.JSON(revisions)
}

// HandlePrune removes old archived revisions.
// @Summary Prune Archive
// @Description Removes all but the newest keep archived revisions.
// @Tags publish
// @Produce json
// @Param keep query int true "Revisions to keep"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid keep"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /localizations/history [delete]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	keep := c.QueryInt("keep", -1)
	if keep < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "keep must be a non-negative integer"})
	}

	removed, err := h.service.Prune(c.Context(), keep)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to prune archive", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "removed": removed})
	}
	if removed == nil {
		removed = []string{}
	}
	return c.JSON(fiber.Map{"removed": removed})
}
