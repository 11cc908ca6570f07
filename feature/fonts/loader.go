package fonts

import (
	"font-helper/core/router"

	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the fonts feature over catalog.
func NewFeature(catalog Catalog, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(catalog, logger), logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "fonts"
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
