package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/postkutsche/postkutsche.toml"

// Config holds everything Postkutsche reads from its TOML file.
type Config struct {
	Paths         Paths         `toml:"paths"`
	OnlineBrief24 OnlineBrief24 `toml:"onlinebrief24"`
	Cache         Cache         `toml:"cache"`
}

// Paths points at the watched folders.
type Paths struct {
	UploadFolder  string `toml:"upload_folder"`
	ArchiveFolder string `toml:"archive_folder"`
}

// OnlineBrief24 holds the credentials for the letter-shipping service.
type OnlineBrief24 struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Cache locates the local database file.
type Cache struct {
	Database string `toml:"database"`
}

// HasCredentials reports whether both username and password are set.
func (c Config) HasCredentials() bool {
	return strings.TrimSpace(c.OnlineBrief24.Username) != "" &&
		strings.TrimSpace(c.OnlineBrief24.Password) != ""
}

// ArchiveFolder returns the configured archive folder, falling back to
// <upload_folder>/archive when none is configured.
func (c Config) ArchiveFolder() string {
	if strings.TrimSpace(c.Paths.ArchiveFolder) != "" {
		return c.Paths.ArchiveFolder
	}
	return filepath.Join(c.Paths.UploadFolder, "archive")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the config written on first start.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Paths: Paths{
			UploadFolder: filepath.Join(home, "Postkutsche"),
		},
		Cache: Cache{
			Database: filepath.Join(home, ".cache", "postkutsche", "postkutsche.db"),
		},
	}
}

// Load reads the config from path, writing the default config first when the
// file does not exist yet.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if err := write(resolved, cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg back to path, creating directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	return write(resolved, cfg)
}

func write(resolved string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// Store keeps the live config and persists updates back to disk.
// The settings page mutates it; services read it through Snapshot so they
// always see the latest saved values.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

// NewStore loads the config at path and wraps it in a Store.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Snapshot returns the current config value.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update replaces the config and writes it to disk.
func (s *Store) Update(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := Save(s.path, cfg); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}
