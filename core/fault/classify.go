package fault

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
)

// Kind is the outcome of classifying a fault.
type Kind int

const (
	// Fatal is anything not known to be caused by the peer going away.
	Fatal Kind = iota
	// ClientDisconnect is a benign failure caused by the peer closing the connection.
	ClientDisconnect
)

func (k Kind) String() string {
	switch k {
	case ClientDisconnect:
		return "client_disconnect"
	default:
		return "fatal"
	}
}

// Verdict is a classification with the rule that produced it.
type Verdict struct {
	Kind   Kind
	Reason string
}

// Errors that mean the connection was closed or broken by the peer.
var disconnectErrors = []error{
	syscall.EPIPE,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	net.ErrClosed,
	io.ErrClosedPipe,
}

// DefaultMarkers are matched case-insensitively when no typed error is available.
var DefaultMarkers = []string{
	"broken pipe",
	"brokenpipe",
	"connection reset",
	"connection aborted",
	"use of closed network connection",
	"epipe",
	"econnreset",
}

// Classifier decides whether an abrupt failure is a client disconnect.
// It must never miss a disconnect; misreading a bug as one is tolerated.
type Classifier struct {
	markers []string
}

// NewClassifier returns a classifier using DefaultMarkers plus extra.
func NewClassifier(extra ...string) *Classifier {
	markers := make([]string, 0, len(DefaultMarkers)+len(extra))
	markers = append(markers, DefaultMarkers...)
	for _, m := range extra {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}
	return &Classifier{markers: markers}
}

// Classify inspects v, which may be a *Fault, an error, a string or any recovered value.
// Nested faults are seen through: errors.Is follows Unwrap, and a fault's text
// includes the text of every fault it wraps.
func (c *Classifier) Classify(v any) Verdict {
	if err, ok := v.(error); ok {
		for _, target := range disconnectErrors {
			if errors.Is(err, target) {
				return Verdict{Kind: ClientDisconnect, Reason: "typed: " + target.Error()}
			}
		}
	}

	if m, ok := c.match(text(v)); ok {
		return Verdict{Kind: ClientDisconnect, Reason: "marker: " + m}
	}
	return Verdict{Kind: Fatal, Reason: "unclassified"}
}

// IsClientDisconnect is shorthand for Classify(v).Kind == ClientDisconnect.
func (c *Classifier) IsClientDisconnect(v any) bool {
	return c.Classify(v).Kind == ClientDisconnect
}

func (c *Classifier) match(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	s = strings.ToLower(s)
	for _, m := range c.markers {
		if strings.Contains(s, m) {
			return m, true
		}
	}
	return "", false
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
