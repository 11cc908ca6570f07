// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and registers its routes into
// the shared route table when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(table *router.Table) error
//	}
//
// # Manager
//
// The Manager keeps features in registration order and loads the enabled ones
// with LoadAll. Because the route table resolves duplicates in favour of the
// first registration, the order in which features are registered is also the
// order in which their routes take precedence.
package loader
