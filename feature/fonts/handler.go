package fonts

import (
	"errors"

	"font-helper/core/config"
	"font-helper/core/dispatch"
	"font-helper/core/fontsource"
	"font-helper/core/logger"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the Figma font endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes returns the routes served by this handler.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: fiber.MethodGet, Path: "/figma/font-files", Handler: router.HandlerFunc(h.HandleFontFiles)},
		{Method: fiber.MethodGet, Path: "/figma/font-file", Handler: router.HandlerFunc(h.HandleFontFile)},
	}
}

// HandleFontFiles lists every installed font file and its faces.
// @Summary List Font Files
// @Description Lists every installed font file with the faces it contains.
// @Tags fonts
// @Produce json
// @Success 200 {object} FontFilesResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /figma/font-files [get]
func (h *Handler) HandleFontFiles(c *fiber.Ctx, _ *config.Config) error {
	l := logger.WithRayID(h.logger, c)
	// The Figma web client calls from its own origin
	dispatch.AllowCORS(c)

	// Build the payload from the shared index
	resp, err := h.service.FontFiles(c.Context())
	if err != nil {
		l.Error("Failed to list font files", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Debug("Font files listed", zap.Int("files", len(resp.FontFiles)))
	return c.JSON(resp)
}

// HandleFontFile streams one indexed font file.
// @Summary Font File
// @Description Streams the raw bytes of a font file that is part of the index.
// @Tags fonts
// @Produce octet-stream
// @Param file query string true "Absolute path of an indexed font file"
// @Success 200 {file} file "Font bytes"
// @Failure 400 {object} map[string]string "Missing file parameter"
// @Failure 404 {object} map[string]string "Not an indexed font"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /figma/font-file [get]
func (h *Handler) HandleFontFile(c *fiber.Ctx, _ *config.Config) error {
	l := logger.WithRayID(h.logger, c)
	dispatch.AllowCORS(c)

	// Validate parameter
	path := c.Query("file")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file parameter"})
	}

	// Only files the index knows about are served
	data, err := h.service.ReadFile(c.Context(), path)
	if errors.Is(err, fontsource.ErrNotIndexed) {
		l.Warn("Requested file is not an indexed font", zap.String("file", path))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "file": path})
	}
	if err != nil {
		l.Error("Failed to read font file", zap.String("file", path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}
