package supervisor

import (
	"errors"

	"font-helper/core/dispatch"
	"font-helper/core/logger"
	"font-helper/core/middleware/rayid"
	"font-helper/core/middleware/recovery"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newApp builds one serving loop. Each restart gets a fresh app wired to the
// same routing table.
func (s *Supervisor) newApp(box *faultBox) *fiber.App {
	srv := s.cfg.Server
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Concurrency:           srv.Concurrency,
		ReadTimeout:           srv.ReadTimeout,
		WriteTimeout:          srv.WriteTimeout,
		IdleTimeout:           srv.IdleTimeout,
		ErrorHandler:          errorHandler,
	})

	// Recovery goes first so a fault raised by any later middleware,
	// request logging included, is classified like a handler fault.
	app.Use(recovery.New(recovery.Config{
		Classifier: s.classifier,
		Logger:     s.logger,
		Metrics:    s.metrics,
		Isolate:    srv.IsolateRequests,
		Escalate:   box.put,
	}))
	app.Use(rayid.New())
	app.Use(s.requestLog)
	app.Use(dispatch.New(s.table, s.cfg, s.fallback).Handle)

	return app
}

func (s *Supervisor) requestLog(c *fiber.Ctx) error {
	method := c.Method()
	done := false
	// A panic passes through untouched; recovery answers it with a 500.
	defer func() {
		if !done {
			s.metrics.ObserveRequest(method, fiber.StatusInternalServerError)
		}
	}()

	l := logger.WithRayID(s.logger, c)
	l.Info("Request received",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()))

	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = statusOf(err)
		l.Error("Request failed", zap.Int("status", status), zap.Error(err))
	}
	done = true
	s.metrics.ObserveRequest(method, status)
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
