package server

import (
	"net"
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server and its supervisor.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port int `mapstructure:"port" default:"44950"`
	// Concurrency bounds the number of connections served at once.
	Concurrency int `mapstructure:"concurrency" default:"1024"`
	// IsolateRequests absorbs client disconnects inside the failing request
	// instead of restarting the whole server.
	IsolateRequests bool `mapstructure:"isolate_requests" default:"true"`
	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `mapstructure:"read_timeout" default:"5s"`
	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"30s"`
	// IdleTimeout is how long keep-alive connections are kept open.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" default:"60s"`
	// Docs serves the Swagger UI below /swagger/.
	Docs bool `mapstructure:"docs" default:"true"`
	// ShutdownTimeout bounds graceful shutdown on stop and on fatal faults.
	// Restarts drop in-flight connections instead of draining them.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"5s"`
	// DisconnectMarkers are extra message fragments that classify a fault as
	// a client disconnect, comma separated in the environment.
	DisconnectMarkers []string `mapstructure:"disconnect_markers" default:""`
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsValidPort checks that the configured port can be bound.
// Zero is accepted and means an ephemeral port.
func (c Config) IsValidPort() bool {
	return c.Port >= 0 && c.Port <= 65535
}
