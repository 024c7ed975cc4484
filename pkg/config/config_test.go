package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/pkg/config"
)

func TestLoad_SinArchivoAplicaDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, config.DefaultMainDomain, cfg.API.MainDomain)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.Production)
	assert.Equal(t, "0.0.0.0:8087", cfg.Mock.Addr())
}

func TestLoad_LeeConfigJSON(t *testing.T) {
	dir := t.TempDir()
	raw := `{"apiUrl":"https://api.mypos.example/","mainDomain":"mypos.example","production":true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.mypos.example", cfg.API.URL, "la barra final se recorta")
	assert.Equal(t, "mypos.example", cfg.API.MainDomain)
	assert.True(t, cfg.Production)
}

func TestLoad_EntornoPisaAlArchivo(t *testing.T) {
	dir := t.TempDir()
	raw := `{"apiUrl":"https://api.mypos.example"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0o600))

	t.Setenv("API_URL", "http://localhost:9999")
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.API.URL)
}
