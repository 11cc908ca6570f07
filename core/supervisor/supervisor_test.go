package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"font-helper/core/config"
	"font-helper/core/fault"
	"font-helper/core/metrics"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func counterSum(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			sum += metric.GetCounter().GetValue()
		}
	}
	return sum
}

// slowStarted receives a value each time /slow begins handling a request.
var slowStarted = make(chan struct{}, 8)

func testTable() *router.Table {
	table := router.NewTable()
	table.MustRegister(
		router.Route{Method: fiber.MethodGet, Path: "/slow", Handler: router.HandlerFunc(func(c *fiber.Ctx, _ *config.Config) error {
			slowStarted <- struct{}{}
			time.Sleep(3 * time.Second)
			return c.SendString("slow")
		})},
		router.Route{Method: fiber.MethodGet, Path: "/custom", Handler: router.HandlerFunc(func(*fiber.Ctx, *config.Config) error {
			panic("upstream stream went away")
		})},
		router.Route{Method: fiber.MethodGet, Path: "/x", Handler: router.HandlerFunc(func(c *fiber.Ctx, _ *config.Config) error {
			return c.SendString("ok")
		})},
		router.Route{Method: fiber.MethodGet, Path: "/pipe", Handler: router.HandlerFunc(func(*fiber.Ctx, *config.Config) error {
			panic("write failed: Broken pipe (os error 32)")
		})},
		router.Route{Method: fiber.MethodGet, Path: "/bug", Handler: router.HandlerFunc(func(*fiber.Ctx, *config.Config) error {
			panic("index out of range")
		})},
	)
	return table
}

type harness struct {
	sup  *Supervisor
	logs *observer.ObservedLogs
	met  *metrics.Metrics
	done chan error
	stop context.CancelFunc
	base string
}

type harnessOptions struct {
	isolate         bool
	listen          func(string, string) (net.Listener, error)
	shutdownTimeout time.Duration
	markers         []string
	hook            func(zapcore.Entry) error
}

func start(t *testing.T, isolate bool, listen func(string, string) (net.Listener, error)) *harness {
	t.Helper()
	return startWith(t, harnessOptions{isolate: isolate, listen: listen})
}

func startWith(t *testing.T, opts harnessOptions) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Port = freePort(t)
	cfg.Server.IsolateRequests = opts.isolate
	cfg.Server.ShutdownTimeout = time.Second
	if opts.shutdownTimeout > 0 {
		cfg.Server.ShutdownTimeout = opts.shutdownTimeout
	}
	cfg.Server.DisconnectMarkers = opts.markers

	core, logs := observer.New(zapcore.DebugLevel)
	var logCore zapcore.Core = core
	if opts.hook != nil {
		logCore = zapcore.RegisterHooks(core, opts.hook)
	}
	met := metrics.New()
	sup := New(testTable(), cfg, Options{
		Logger:  zap.New(logCore),
		Metrics: met,
		Listen:  opts.listen,
	})

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{
		sup:  sup,
		logs: logs,
		met:  met,
		done: make(chan error, 1),
		stop: cancel,
		base: fmt.Sprintf("http://%s", cfg.Server.Address()),
	}
	go func() { h.done <- sup.Run(ctx) }()
	t.Cleanup(cancel)
	return h
}

func (h *harness) waitRunning(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.sup.State() == Running
	}, 3*time.Second, 5*time.Millisecond)
}

func (h *harness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not return")
		return nil
	}
}

var client = &http.Client{
	Timeout:   2 * time.Second,
	Transport: &http.Transport{DisableKeepAlives: true},
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "starting", Starting.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "restarting_after_fault", RestartingAfterFault.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "fatally_faulted", FatallyFaulted.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, Stopped.Terminal())
	assert.True(t, FatallyFaulted.Terminal())
	assert.False(t, Running.Terminal())
}

func TestSupervisor_ServesAndStops(t *testing.T) {
	h := start(t, true, nil)
	h.waitRunning(t)

	status, body := get(t, h.base+"/x")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	status, _ = get(t, h.base+"/missing")
	assert.Equal(t, http.StatusNotFound, status)

	req, err := http.NewRequest(http.MethodOptions, h.base+"/anything", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://www.figma.com", resp.Header.Get("Access-Control-Allow-Origin"))

	h.stop()
	assert.NoError(t, h.wait(t))
	assert.Equal(t, Stopped, h.sup.State())
	assert.Equal(t, int64(0), h.sup.Restarts())
	assert.Equal(t, 1, h.logs.FilterMessage("Server stopped").Len())
	assert.Equal(t, 3.0, counterSum(t, h.met, "font_helper_requests_total"))
}

func TestSupervisor_RestartsAfterEscalatedDisconnect(t *testing.T) {
	h := start(t, false, nil)
	h.waitRunning(t)

	// The faulting connection may be torn down by the restart.
	if resp, err := client.Get(h.base + "/pipe"); err == nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		return h.sup.Restarts() == 1 && h.sup.State() == Running
	}, 3*time.Second, 5*time.Millisecond)

	status, body := get(t, h.base+"/x")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	restarted := h.logs.FilterMessage("Client disconnect escaped serving loop, restarting").All()
	require.Len(t, restarted, 1)
	assert.Equal(t, zapcore.WarnLevel, restarted[0].Level)
	assert.Equal(t, 1.0, counterSum(t, h.met, "font_helper_restarts_total"))

	h.stop()
	assert.NoError(t, h.wait(t))
}

func TestSupervisor_IsolatedDisconnectDoesNotRestart(t *testing.T) {
	h := start(t, true, nil)
	h.waitRunning(t)

	status, body := get(t, h.base+"/pipe")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "Broken pipe")

	status, body = get(t, h.base+"/x")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	assert.Equal(t, int64(0), h.sup.Restarts())
	assert.Equal(t, Running, h.sup.State())
	assert.Equal(t, 1, h.logs.FilterMessage("Client disconnected during request").Len())

	h.stop()
	assert.NoError(t, h.wait(t))
}

func TestSupervisor_FatalFaultStops(t *testing.T) {
	for _, isolate := range []bool{true, false} {
		t.Run(fmt.Sprintf("isolate=%v", isolate), func(t *testing.T) {
			h := start(t, isolate, nil)
			h.waitRunning(t)

			if resp, err := client.Get(h.base + "/bug"); err == nil {
				resp.Body.Close()
			}

			err := h.wait(t)
			require.Error(t, err)
			var flt *fault.Fault
			require.True(t, errors.As(err, &flt))
			assert.Equal(t, fault.OriginHandler, flt.Origin)
			assert.Equal(t, "index out of range", flt.Value)
			assert.Equal(t, FatallyFaulted, h.sup.State())
			assert.Equal(t, int64(0), h.sup.Restarts())
			assert.Equal(t, 1, h.logs.FilterMessage("Fatal fault, stopping server").Len())
		})
	}
}

func TestSupervisor_BindFailure(t *testing.T) {
	h := start(t, true, func(string, string) (net.Listener, error) {
		return nil, syscall.EADDRINUSE
	})

	err := h.wait(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Equal(t, FatallyFaulted, h.sup.State())
}

type capturingListen struct {
	mu  sync.Mutex
	lns []net.Listener
}

func (c *capturingListen) listen(network, address string) (net.Listener, error) {
	ln, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.lns = append(c.lns, ln)
	c.mu.Unlock()
	return ln, nil
}

func (c *capturingListen) last() net.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lns[len(c.lns)-1]
}

func TestSupervisor_UnexpectedExit(t *testing.T) {
	cl := &capturingListen{}
	h := start(t, true, cl.listen)
	h.waitRunning(t)

	require.NoError(t, cl.last().Close())

	assert.NoError(t, h.wait(t))
	assert.Equal(t, Stopped, h.sup.State())
	exited := h.logs.FilterMessage("Serving loop exited unexpectedly").All()
	require.Len(t, exited, 1)
	assert.Equal(t, zapcore.WarnLevel, exited[0].Level)
}

// failingListener fails its first Accept with err.
type failingListener struct {
	net.Listener
	err    error
	failed atomic.Bool
}

func (l *failingListener) Accept() (net.Conn, error) {
	if l.failed.CompareAndSwap(false, true) {
		return nil, l.err
	}
	return l.Listener.Accept()
}

func TestSupervisor_ServeError(t *testing.T) {
	t.Run("disconnect restarts", func(t *testing.T) {
		var calls atomic.Int32
		h := start(t, true, func(network, address string) (net.Listener, error) {
			ln, err := net.Listen(network, address)
			if err != nil || calls.Add(1) > 1 {
				return ln, err
			}
			return &failingListener{Listener: ln, err: fmt.Errorf("accept: %w", syscall.ECONNABORTED)}, nil
		})

		require.Eventually(t, func() bool {
			return h.sup.Restarts() == 1 && h.sup.State() == Running
		}, 3*time.Second, 5*time.Millisecond)

		status, body := get(t, h.base+"/x")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body)

		h.stop()
		assert.NoError(t, h.wait(t))
	})

	t.Run("other errors are fatal", func(t *testing.T) {
		h := start(t, true, func(network, address string) (net.Listener, error) {
			ln, err := net.Listen(network, address)
			if err != nil {
				return nil, err
			}
			return &failingListener{Listener: ln, err: errors.New("accept: too many open files")}, nil
		})

		err := h.wait(t)
		var flt *fault.Fault
		require.True(t, errors.As(err, &flt))
		assert.Equal(t, fault.OriginServe, flt.Origin)
		assert.Equal(t, FatallyFaulted, h.sup.State())
	})
}

func TestWorse(t *testing.T) {
	c := fault.NewClassifier()
	pipe := fault.Recovered("broken pipe", nil)
	bug := fault.Recovered("nil map", nil)

	assert.Same(t, pipe, worse(c, pipe, nil))
	assert.Same(t, bug, worse(c, nil, bug))
	assert.Same(t, bug, worse(c, pipe, bug))
	assert.Same(t, bug, worse(c, bug, pipe))
}

func TestFaultBox_KeepsFatal(t *testing.T) {
	box := newFaultBox(fault.NewClassifier())
	bug := fault.Recovered("nil map", nil)

	box.put(fault.Recovered("broken pipe", nil))
	box.put(bug)
	box.put(fault.Recovered("connection reset by peer", nil))

	assert.Same(t, bug, box.take())
	assert.Nil(t, box.take())
}

func TestSupervisor_RestartDropsInFlightRequests(t *testing.T) {
	h := startWith(t, harnessOptions{isolate: false, shutdownTimeout: 5 * time.Second})
	h.waitRunning(t)

	go func() {
		if resp, err := client.Get(h.base + "/slow"); err == nil {
			resp.Body.Close()
		}
	}()
	select {
	case <-slowStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("slow request never started")
	}

	faulted := time.Now()
	if resp, err := client.Get(h.base + "/pipe"); err == nil {
		resp.Body.Close()
	}

	quick := &http.Client{
		Timeout:   200 * time.Millisecond,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	require.Eventually(t, func() bool {
		resp, err := quick.Get(h.base + "/x")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	assert.Less(t, time.Since(faulted), time.Second, "restart must not wait for the slow request")
	assert.Equal(t, int64(1), h.sup.Restarts())
	assert.Equal(t, 1, h.logs.FilterMessage("Dropped in-flight connections").Len())

	h.stop()
	assert.NoError(t, h.wait(t))
}

func TestSupervisor_FaultInRequestLogging(t *testing.T) {
	var fired atomic.Bool
	h := startWith(t, harnessOptions{
		isolate: true,
		hook: func(e zapcore.Entry) error {
			if e.Message == "Request received" && fired.CompareAndSwap(false, true) {
				panic("log sink: broken pipe")
			}
			return nil
		},
	})
	h.waitRunning(t)

	status, _ := get(t, h.base+"/x")
	assert.Equal(t, http.StatusInternalServerError, status)

	status, body := get(t, h.base+"/x")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	assert.Equal(t, Running, h.sup.State())
	assert.Equal(t, int64(0), h.sup.Restarts())
	assert.Equal(t, 1, h.logs.FilterMessage("Client disconnected during request").Len())

	h.stop()
	assert.NoError(t, h.wait(t))
}

func TestSupervisor_ConfiguredDisconnectMarkers(t *testing.T) {
	t.Run("configured marker is absorbed", func(t *testing.T) {
		h := startWith(t, harnessOptions{isolate: true, markers: []string{"stream went away"}})
		h.waitRunning(t)

		status, _ := get(t, h.base+"/custom")
		assert.Equal(t, http.StatusInternalServerError, status)
		status, _ = get(t, h.base+"/x")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, Running, h.sup.State())

		h.stop()
		assert.NoError(t, h.wait(t))
	})

	t.Run("without the marker it is fatal", func(t *testing.T) {
		h := startWith(t, harnessOptions{isolate: true})
		h.waitRunning(t)

		if resp, err := client.Get(h.base + "/custom"); err == nil {
			resp.Body.Close()
		}
		err := h.wait(t)
		var flt *fault.Fault
		require.True(t, errors.As(err, &flt))
		assert.Equal(t, FatallyFaulted, h.sup.State())
	})
}

func TestConnTracker(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	tracker := newConnTracker(ln)

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := tracker.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	peer, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer peer.Close()
	<-accepted

	require.NoError(t, tracker.Close())
	assert.NoError(t, tracker.Close(), "second close is a no-op")
	assert.Equal(t, 1, tracker.dropAll())
	assert.Equal(t, 0, tracker.dropAll())

	_ = peer.SetReadDeadline(time.Now().Add(time.Second))
	_, err = peer.Read(make([]byte, 1))
	assert.Error(t, err, "dropped connection is closed by the server")
}
