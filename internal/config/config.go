package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for ob.
type Config struct {
	ClientID string        `toml:"client_id"`
	APIURL   string        `toml:"api_url"`
	BaseDir  string        `toml:"base_dir"`
	LogDir   string        `toml:"log_dir"`
	Session  SessionConfig `toml:"session"`
	Cache    CacheConfig   `toml:"cache"`
	Media    MediaConfig   `toml:"media"`
}

// SessionConfig describes where the durable session records live.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type SessionConfig struct {
	Type string `toml:"type"` // "file" (default), "age", or "memory"
	Dir  string `toml:"dir,omitempty"`

	// Age-specific fields (only used when Type == "age")
	IdentityPath string `toml:"identity_path,omitempty"`
}

// CacheConfig describes the durable read cache backing offline display.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type CacheConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// MediaConfig describes where post media is uploaded before the URL is
// handed to the backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type MediaConfig struct {
	Type string `toml:"type"` // "none" (default), "s3", "filesystem", or "memory"

	// S3-specific fields (only used when Type == "s3")
	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Prefix    string `toml:"s3_prefix,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3BaseURL   string `toml:"s3_base_url,omitempty"` // public URL prefix; defaults to the bucket endpoint
	S3AccessKey string `toml:"s3_access_key,omitempty"`
	S3SecretKey string `toml:"s3_secret_key,omitempty"`

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot    string `toml:"fs_root,omitempty"`
	FSBaseURL string `toml:"fs_base_url,omitempty"`
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(clientID, apiURL, baseDir string) *Config {
	return &Config{
		ClientID: clientID,
		APIURL:   apiURL,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Session: SessionConfig{
			Type:         "file",
			Dir:          filepath.Join(baseDir, "session"),
			IdentityPath: filepath.Join(baseDir, "keys", "ob.key"),
		},
		Cache: CacheConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "cache"),
		},
		Media: MediaConfig{
			Type: "none",
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
