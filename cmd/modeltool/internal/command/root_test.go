package command

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockforge/internal/config"
)

func writeZipPack(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("assets/minecraft/models/block/stone.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"textures": {"all": "block/stone"}}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestSetupClosesPacksOnFailure(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: error\n"), 0644))

	good := filepath.Join(dir, "vanilla.zip")
	writeZipPack(t, good)

	app := &App{}
	err := app.setup(config.Overrides{
		ConfigPath: configPath,
		Packs:      []string{good, filepath.Join(dir, "absent.zip")},
	})
	require.Error(t, err)

	require.NotNil(t, app.Assets)
	assert.Empty(t, app.Assets.Packs(), "packs opened before the failure must be closed")
}

func TestSetupOpensPacks(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: error\n"), 0644))

	good := filepath.Join(dir, "vanilla.zip")
	writeZipPack(t, good)

	app := &App{}
	require.NoError(t, app.setup(config.Overrides{ConfigPath: configPath, Packs: []string{good}}))
	defer app.close()

	assert.Len(t, app.Assets.Packs(), 1)
	m, err := app.Resolver.ResolveString("block/stone")
	require.NoError(t, err)
	assert.Contains(t, m.Textures, "all")
}
