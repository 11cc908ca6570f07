package loader

import (
	"fmt"

	"font-helper/core/router"

	"go.uber.org/zap"
)

// Feature is a module that contributes routes to the table.
type Feature interface {
	Name() string
	IsEnabled() bool
	Load(table *router.Table) error
}

// Manager holds registered features in registration order.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates an empty manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Register adds a feature. Order matters: earlier features win route collisions.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature into table and returns the names loaded.
func (m *Manager) LoadAll(table *router.Table) ([]string, error) {
	var loaded []string
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Info("Feature disabled", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(table); err != nil {
			return loaded, fmt.Errorf("load feature %s: %w", f.Name(), err)
		}
		m.logger.Info("Feature loaded", zap.String("feature", f.Name()))
		loaded = append(loaded, f.Name())
	}
	return loaded, nil
}
