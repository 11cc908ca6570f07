// Package metrics exposes Prometheus collectors for the font helper.
//
// It counts dispatched requests, classified faults, and supervisor restarts,
// and tracks the supervisor state as a gauge. Collectors live on a private
// registry so tests can create as many instances as they like; Handler bridges
// promhttp into fiber for the GET /metrics route.
package metrics
