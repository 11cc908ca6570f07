package loader

import (
	"testing"

	"font-helper/core/config"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	path    string
	err     error
}

func (s stubFeature) Name() string    { return s.name }
func (s stubFeature) IsEnabled() bool { return s.enabled }
func (s stubFeature) Load(table *router.Table) error {
	if s.err != nil {
		return s.err
	}
	return table.Register(router.Route{
		Method: fiber.MethodGet,
		Path:   s.path,
		Handler: router.HandlerFunc(func(c *fiber.Ctx, _ *config.Config) error {
			return c.SendString(s.name)
		}),
	})
}

func TestManager_LoadAll(t *testing.T) {
	m := NewManager(nil)
	m.Register(stubFeature{name: "a", enabled: true, path: "/a"})
	m.Register(stubFeature{name: "off", enabled: false, path: "/off"})
	m.Register(stubFeature{name: "b", enabled: true, path: "/b"})

	table := router.NewTable()
	loaded, err := m.LoadAll(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, loaded)
	assert.Equal(t, 2, table.Len())
	_, ok := table.Lookup(fiber.MethodGet, "/off")
	assert.False(t, ok)
}

func TestManager_LoadAllError(t *testing.T) {
	m := NewManager(nil)
	m.Register(stubFeature{name: "a", enabled: true, path: "/a"})
	m.Register(stubFeature{name: "broken", enabled: true, err: assert.AnError})
	m.Register(stubFeature{name: "c", enabled: true, path: "/c"})

	loaded, err := m.LoadAll(router.NewTable())
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "load feature broken")
	assert.Equal(t, []string{"a"}, loaded)
}

func TestManager_SealedTable(t *testing.T) {
	m := NewManager(nil)
	m.Register(stubFeature{name: "late", enabled: true, path: "/late"})

	table := router.NewTable()
	table.Seal()
	_, err := m.LoadAll(table)
	assert.ErrorIs(t, err, router.ErrSealed)
}
