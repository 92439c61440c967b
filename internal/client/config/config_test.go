package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Equal(t, "http://127.0.0.1:8000", c.ServerEndpointAddr)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(map[string]any{"server_endpoint_addr": "http://json:9000"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	t.Run("json overlays defaults", func(t *testing.T) {
		os.Args = []string{"cli", "-config", path}
		c := LoadConfig()
		assert.Equal(t, "http://json:9000", c.ServerEndpointAddr)
	})

	t.Run("flags win over json", func(t *testing.T) {
		os.Args = []string{"cli", "-config", path, "-a", "http://flag:9001"}
		c := LoadConfig()
		assert.Equal(t, "http://flag:9001", c.ServerEndpointAddr)
	})
}
