package fontsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Directories(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Config{
		Dirs:       []string{"/usr/share/fonts", " ", "/usr/share/fonts/", "~/.fonts"},
		LibraryDir: "~/.fonts",
	}

	assert.Equal(t, []string{"/usr/share/fonts", filepath.Join(home, ".fonts")}, cfg.Directories())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "fonts"), ExpandHome("~/fonts"))
	assert.Equal(t, "/abs/~/x", ExpandHome("/abs/~/x"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
