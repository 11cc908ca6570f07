package status

import (
	"font-helper/core/metrics"
	"font-helper/core/router"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the status feature.
func NewFeature(m *metrics.Metrics) *Feature {
	return &Feature{handler: NewHandler(m)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "status"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(table *router.Table) error {
	for _, r := range f.handler.Routes() {
		if err := table.Register(r); err != nil {
			return err
		}
	}
	return nil
}
