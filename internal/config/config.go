// Package config loads the arpv configuration.
//
// Values are layered: built-in defaults, then the YAML file named by --config
// or ARPV_CONFIG (optional), then ARPV_* environment variables. Command-line
// flags are applied last by the commands themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full arpv configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Extract ExtractConfig `yaml:"extract"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Staging is the flat directory extracted members are written to.
	Staging string `yaml:"staging"`

	// Upload is where --keep-source copies archives before building.
	Upload string `yaml:"upload"`
}

// ExtractConfig configures the background extraction pool.
type ExtractConfig struct {
	// Workers is the pool width. Zero means one worker per CPU.
	Workers int `yaml:"workers"`

	// FallbackCharset decodes zip names that are neither UTF-8 flagged nor
	// preceded by a BOM. Any WHATWG encoding label is accepted.
	FallbackCharset string `yaml:"fallback_charset"`
}

// ServerConfig configures `arpv serve`.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	root := filepath.Join(os.TempDir(), "arpv")
	return &Config{
		Paths: PathsConfig{
			Staging: filepath.Join(root, "staging"),
			Upload:  filepath.Join(root, "upload"),
		},
		Extract: ExtractConfig{
			FallbackCharset: "gbk",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8086",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the file at path (or
// ARPV_CONFIG when path is empty) and the environment. A missing path is not
// an error; a named file that cannot be read is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("ARPV_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ARPV_STAGING_DIR":      &c.Paths.Staging,
		"ARPV_UPLOAD_DIR":       &c.Paths.Upload,
		"ARPV_FALLBACK_CHARSET": &c.Extract.FallbackCharset,
		"ARPV_LISTEN_ADDR":      &c.Server.Listen,
		"ARPV_LOG_LEVEL":        &c.Log.Level,
		"ARPV_LOG_FORMAT":       &c.Log.Format,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("ARPV_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ARPV_WORKERS: %w", err)
		}
		c.Extract.Workers = n
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Staging == "" {
		errs = append(errs, errors.New("paths.staging is required"))
	}
	if c.Extract.Workers < 0 {
		errs = append(errs, fmt.Errorf("extract.workers must not be negative, got %d", c.Extract.Workers))
	}
	formats := []string{"json", "console"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	return errors.Join(errs...)
}

// WorkerCount returns the effective extraction pool width.
func (c *Config) WorkerCount() int {
	if c.Extract.Workers > 0 {
		return c.Extract.Workers
	}
	return runtime.NumCPU()
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Staging, c.Paths.Upload} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
