// Package status exposes liveness and Prometheus metrics endpoints.
package status
