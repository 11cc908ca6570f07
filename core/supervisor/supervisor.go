package supervisor

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"font-helper/core/config"
	"font-helper/core/fault"
	"font-helper/core/metrics"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultBackoff is the pause before re-binding after a client disconnect fault.
const DefaultBackoff = 100 * time.Millisecond

// Options carries the optional collaborators of a Supervisor.
type Options struct {
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Classifier *fault.Classifier
	// Fallback handles requests that match no route. Nil means a JSON 404.
	Fallback router.Handler
	// Backoff overrides DefaultBackoff.
	Backoff time.Duration
	// Listen binds the server socket. Defaults to net.Listen.
	Listen func(network, address string) (net.Listener, error)
}

// Supervisor owns the serving loop and restarts it after client disconnect
// faults. Any other fault stops it for good.
type Supervisor struct {
	table      *router.Table
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.Metrics
	classifier *fault.Classifier
	fallback   router.Handler
	backoff    time.Duration
	listen     func(network, address string) (net.Listener, error)

	state    atomic.Int32
	restarts atomic.Int64

	mu   sync.RWMutex
	addr string
}

// New creates a supervisor for the given table. The table is sealed when Run
// starts.
func New(table *router.Table, cfg *config.Config, opts Options) *Supervisor {
	s := &Supervisor{
		table:      table,
		cfg:        cfg,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		classifier: opts.Classifier,
		fallback:   opts.Fallback,
		backoff:    opts.Backoff,
		listen:     opts.Listen,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.classifier == nil {
		s.classifier = fault.NewClassifier(cfg.Server.DisconnectMarkers...)
	}
	if s.backoff <= 0 {
		s.backoff = DefaultBackoff
	}
	if s.listen == nil {
		s.listen = net.Listen
	}
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Restarts returns how many times the serving loop was rebuilt.
func (s *Supervisor) Restarts() int64 {
	return s.restarts.Load()
}

// Addr returns the address of the most recently bound listener.
func (s *Supervisor) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Run binds the configured address and serves until ctx is cancelled, the
// serving loop exits on its own, or a fatal fault occurs. It returns nil in
// the first two cases. A fatal fault is returned as a *fault.Fault.
func (s *Supervisor) Run(ctx context.Context) error {
	s.table.Seal()
	address := s.cfg.Server.Address()

	for {
		s.setState(Starting)
		ln, err := s.listen("tcp", address)
		if err != nil {
			s.logger.Error("Failed to bind server address", zap.String("addr", address), zap.Error(err))
			s.setState(FatallyFaulted)
			return fmt.Errorf("bind %s: %w", address, err)
		}
		s.setAddr(ln.Addr().String())

		box := newFaultBox(s.classifier)
		app := s.newApp(box)
		conns := newConnTracker(ln)
		served := make(chan error, 1)
		go func() {
			served <- app.Listener(conns)
		}()

		s.setState(Running)
		s.logger.Info("Server listening",
			zap.String("addr", ln.Addr().String()),
			zap.Int("routes", s.table.Len()),
			zap.Bool("isolate_requests", s.cfg.Server.IsolateRequests))

		var flt *fault.Fault
		select {
		case <-ctx.Done():
			// Requested stop: let in-flight requests finish.
			s.drain(app, conns)
			s.logger.Info("Server stopped")
			s.setState(Stopped)
			return nil

		case err := <-served:
			if err != nil {
				flt = worse(s.classifier, fault.FromServe(err), box.take())
				break
			}
			if flt = box.take(); flt == nil {
				s.drain(app, conns)
				s.logger.Warn("Serving loop exited unexpectedly", zap.String("addr", address))
				s.setState(Stopped)
				return nil
			}

		case <-box.notify:
			flt = box.take()
		}

		if flt == nil {
			s.abort(app, conns)
			continue
		}

		verdict := s.classifier.Classify(flt)
		if verdict.Kind == fault.ClientDisconnect {
			// A restart discards the old loop and every connection it held,
			// so the new listener is up after the backoff alone.
			s.abort(app, conns)
			flt = worse(s.classifier, flt, box.take())
			verdict = s.classifier.Classify(flt)
		} else {
			s.drain(app, conns)
		}
		s.metrics.ObserveFault(verdict.Kind.String(), "supervisor")

		if verdict.Kind == fault.ClientDisconnect {
			s.logger.Warn("Client disconnect escaped serving loop, restarting",
				zap.String("origin", string(flt.Origin)),
				zap.String("reason", verdict.Reason),
				zap.Any("fault", flt.Value),
				zap.Duration("backoff", s.backoff))
			s.setState(RestartingAfterFault)

			timer := time.NewTimer(s.backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Info("Server stopped")
				s.setState(Stopped)
				return nil
			case <-timer.C:
			}

			s.restarts.Add(1)
			s.metrics.ObserveRestart()
			continue
		}

		s.logger.Warn("Fatal fault, stopping server",
			zap.String("origin", string(flt.Origin)),
			zap.String("reason", verdict.Reason),
			zap.Any("fault", flt.Value),
			zap.ByteString("stack", flt.Stack))
		s.setState(FatallyFaulted)
		return flt
	}
}

// drain shuts the app down gracefully, bounded by the configured shutdown
// timeout. Connections still open afterwards are dropped.
func (s *Supervisor) drain(app *fiber.App, conns *connTracker) {
	if err := app.ShutdownWithTimeout(s.cfg.Server.ShutdownTimeout); err != nil {
		s.logger.Warn("Server shutdown did not complete", zap.Error(err))
	}
	// Serve may not have registered the listener yet.
	_ = conns.Close()
	if n := conns.dropAll(); n > 0 {
		s.logger.Warn("Dropped connections after shutdown timeout", zap.Int("connections", n))
	}
}

// abort stops the app without waiting for in-flight requests.
func (s *Supervisor) abort(app *fiber.App, conns *connTracker) {
	_ = conns.Close()
	if err := app.ShutdownWithTimeout(0); err != nil {
		s.logger.Debug("Serving loop aborted with open connections", zap.Error(err))
	}
	if n := conns.dropAll(); n > 0 {
		s.logger.Info("Dropped in-flight connections", zap.Int("connections", n))
	}
}

func (s *Supervisor) setState(st State) {
	prev := State(s.state.Swap(int32(st)))
	s.metrics.SetState(int(st))
	if prev != st {
		s.logger.Debug("Server state changed", zap.Stringer("from", prev), zap.Stringer("to", st))
	}
}

func (s *Supervisor) setAddr(addr string) {
	s.mu.Lock()
	s.addr = addr
	s.mu.Unlock()
}
