// Package config loads motif server settings from TOML or YAML files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Isolation modes for generation jobs.
const (
	IsolationInProcess  = "inprocess"
	IsolationSubprocess = "subprocess"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `toml:"server" yaml:"server"`
	Jobs   JobsConfig   `toml:"jobs" yaml:"jobs"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	// AllowOrigin is sent as Access-Control-Allow-Origin; empty disables CORS.
	AllowOrigin  string   `toml:"allow_origin" yaml:"allow_origin"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// JobsConfig configures admission control and isolation.
type JobsConfig struct {
	MaxConcurrent int      `toml:"max_concurrent" yaml:"max_concurrent"`
	Timeout       Duration `toml:"timeout" yaml:"timeout"`
	Isolation     string   `toml:"isolation" yaml:"isolation"`
	// WorkerCommand defaults to the running executable.
	WorkerCommand string   `toml:"worker_command" yaml:"worker_command"`
	WorkerArgs    []string `toml:"worker_args" yaml:"worker_args"`
	TempDir       string   `toml:"temp_dir" yaml:"temp_dir"`
	// CacheEntries is the number of rendered images kept in memory;
	// 0 disables the result cache.
	CacheEntries  int      `toml:"cache_entries" yaml:"cache_entries"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigin:  "*",
			MaxBodyBytes: 32 << 20,
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(60 * time.Second),
		},
		Jobs: JobsConfig{
			MaxConcurrent: 3,
			Timeout:       Duration(30 * time.Second),
			Isolation:     IsolationInProcess,
			WorkerArgs:    []string{"worker"},
			CacheEntries:  32,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of Default. The format is chosen by extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config: unsupported file type %q", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.Jobs.MaxConcurrent < 1 {
		return fmt.Errorf("config: jobs.max_concurrent must be >= 1, got %d", c.Jobs.MaxConcurrent)
	}
	if c.Jobs.Timeout <= 0 {
		return fmt.Errorf("config: jobs.timeout must be positive")
	}
	if c.Jobs.CacheEntries < 0 {
		return fmt.Errorf("config: jobs.cache_entries must be >= 0, got %d", c.Jobs.CacheEntries)
	}
	switch c.Jobs.Isolation {
	case IsolationInProcess, IsolationSubprocess:
	default:
		return fmt.Errorf("config: unknown jobs.isolation %q", c.Jobs.Isolation)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a slog.Logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Duration is a time.Duration that decodes from strings like "30s".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements fmt.Stringer.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
