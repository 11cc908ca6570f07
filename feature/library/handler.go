package library

import (
	"errors"

	"font-helper/core/config"
	"font-helper/core/logger"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the font library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the library routes.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Method: fiber.MethodPost, Path: "/library/sync", Handler: router.HandlerFunc(h.HandleSync)},
		{Method: fiber.MethodGet, Path: "/library/status", Handler: router.HandlerFunc(h.HandleStatus)},
	}
}

// HandleSync pulls the remote library into the local library directory.
// @Summary Sync Library
// @Description Downloads missing or changed fonts from the remote library bucket.
// @Tags library
// @Produce json
// @Success 200 {object} SyncReport
// @Failure 404 {object} map[string]string "Bucket Missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx, _ *config.Config) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering library sync")

	report, err := h.service.Sync(c.Context())
	// A missing bucket is a configuration problem, not a server fault
	if errors.Is(err, ErrBucketMissing) {
		l.Warn("Library bucket is missing", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Library sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Library sync finished",
		zap.Int("downloaded", len(report.Downloaded)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)))
	return c.JSON(report)
}

// HandleStatus compares the bucket with the local library directory.
// @Summary Library Status
// @Description Compares the remote library bucket with the local library directory.
// @Tags library
// @Produce json
// @Success 200 {object} map[string]interface{} "Per-file comparison"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx, _ *config.Config) error {
	l := logger.WithRayID(h.service.logger, c)

	files, err := h.service.Status(c.Context())
	if err != nil {
		l.Error("Library status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"files": files})
}
