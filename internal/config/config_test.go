package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postkutsche.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Paths.UploadFolder)
	assert.NotEmpty(t, cfg.Cache.Database)
	assert.FileExists(t, path)
}

func TestLoadParsesAllSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postkutsche.toml")
	content := `
[paths]
upload_folder = "/tmp/letters"
archive_folder = "/tmp/letters/done"

[onlinebrief24]
username = "alice"
password = "secret"

[cache]
database = "/tmp/pk.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/letters", cfg.Paths.UploadFolder)
	assert.Equal(t, "/tmp/letters/done", cfg.Paths.ArchiveFolder)
	assert.Equal(t, "alice", cfg.OnlineBrief24.Username)
	assert.Equal(t, "secret", cfg.OnlineBrief24.Password)
	assert.Equal(t, "/tmp/pk.db", cfg.Cache.Database)
	assert.True(t, cfg.HasCredentials())
}

func TestArchiveFolderFallback(t *testing.T) {
	cfg := Config{Paths: Paths{UploadFolder: "/tmp/letters"}}
	assert.Equal(t, filepath.Join("/tmp/letters", "archive"), cfg.ArchiveFolder())

	cfg.Paths.ArchiveFolder = "/somewhere/else"
	assert.Equal(t, "/somewhere/else", cfg.ArchiveFolder())
}

func TestStoreUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postkutsche.toml")

	store, err := NewStore(path)
	require.NoError(t, err)

	cfg := store.Snapshot()
	cfg.OnlineBrief24.Username = "bob"
	cfg.OnlineBrief24.Password = "hunter2"
	require.NoError(t, store.Update(cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", reloaded.OnlineBrief24.Username)
	assert.Equal(t, "hunter2", reloaded.OnlineBrief24.Password)
	assert.Equal(t, cfg, store.Snapshot())
}

func TestHasCredentialsRequiresBoth(t *testing.T) {
	cfg := Config{}
	assert.False(t, cfg.HasCredentials())

	cfg.OnlineBrief24.Username = "alice"
	assert.False(t, cfg.HasCredentials())

	cfg.OnlineBrief24.Password = "secret"
	assert.True(t, cfg.HasCredentials())
}
