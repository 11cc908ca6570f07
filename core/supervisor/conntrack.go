package supervisor

import (
	"errors"
	"net"
	"sync"
)

// connTracker remembers every connection accepted by one serving cycle so
// the cycle can be torn down without waiting for its requests.
type connTracker struct {
	net.Listener

	closeOnce sync.Once
	closeErr  error

	mu    sync.Mutex
	conns map[*trackedConn]struct{}
}

func newConnTracker(ln net.Listener) *connTracker {
	return &connTracker{Listener: ln, conns: make(map[*trackedConn]struct{})}
}

func (t *connTracker) Accept() (net.Conn, error) {
	c, err := t.Listener.Accept()
	if err != nil {
		return nil, err
	}
	tc := &trackedConn{Conn: c, tracker: t}
	t.mu.Lock()
	t.conns[tc] = struct{}{}
	t.mu.Unlock()
	return tc, nil
}

// Close closes the listener once. Closing an already closed listener is not an error.
func (t *connTracker) Close() error {
	t.closeOnce.Do(func() {
		if err := t.Listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			t.closeErr = err
		}
	})
	return t.closeErr
}

// dropAll closes every connection still open and returns how many there were.
func (t *connTracker) dropAll() int {
	t.mu.Lock()
	open := t.conns
	t.conns = make(map[*trackedConn]struct{})
	t.mu.Unlock()

	for c := range open {
		_ = c.Close()
	}
	return len(open)
}

func (t *connTracker) forget(c *trackedConn) {
	t.mu.Lock()
	delete(t.conns, c)
	t.mu.Unlock()
}

type trackedConn struct {
	net.Conn
	tracker *connTracker
	once    sync.Once
}

func (c *trackedConn) Close() error {
	c.once.Do(func() { c.tracker.forget(c) })
	return c.Conn.Close()
}
