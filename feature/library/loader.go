package library

import (
	"font-helper/core/router"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature wraps service. A disabled feature registers no routes.
func NewFeature(service *Service, enabled bool) *Feature {
	return &Feature{handler: NewHandler(service), enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
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
