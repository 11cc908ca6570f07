package recovery

import (
	"runtime/debug"

	"font-helper/core/fault"
	"font-helper/core/logger"
	"font-helper/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Config configures the recovery middleware.
type Config struct {
	// Classifier decides whether a recovered panic is a client disconnect.
	Classifier *fault.Classifier
	// Logger receives a warning for every recovered fault.
	Logger *zap.Logger
	// Metrics counts faults; may be nil.
	Metrics *metrics.Metrics
	// Isolate absorbs client disconnects here instead of escalating them.
	Isolate bool
	// Escalate hands a fault to the supervisor. When nil, escalated faults
	// are re-panicked.
	Escalate func(*fault.Fault)
}

// New returns a middleware that recovers panics raised by later handlers in
// the same worker goroutine. Absorbed and escalated faults both end the
// request with the fault as its error.
func New(cfg Config) fiber.Handler {
	if cfg.Classifier == nil {
		cfg.Classifier = fault.NewClassifier()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			f := fault.Recovered(r, debug.Stack())
			verdict := cfg.Classifier.Classify(f)
			l := logger.WithRayID(cfg.Logger, c).With(
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("kind", verdict.Kind.String()),
				zap.String("reason", verdict.Reason),
				zap.Error(f),
			)

			if verdict.Kind == fault.ClientDisconnect && cfg.Isolate {
				l.Warn("Client disconnected during request")
				cfg.Metrics.ObserveFault(verdict.Kind.String(), "request")
				err = f
				return
			}

			l.Warn("Request handler faulted, escalating")
			if cfg.Escalate == nil {
				panic(r)
			}
			cfg.Escalate(f)
			err = f
		}()

		return c.Next()
	}
}
