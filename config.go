// FILE: config.go
package ilog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all engine configuration values.
// A Config is immutable once applied; the level threshold is the only field
// the engine mutates at runtime (via SetLevel), which is why the live
// threshold is held in an atomic outside the Config snapshot.
type Config struct {
	// Basic settings
	Level    int64  `toml:"level"`
	Target   int64  `toml:"target"`    // 1=console, 2=file, 3=both
	FilePath string `toml:"file_path"` // Active log file; backups at file_path.1..N

	// Size limits
	MaxSizeBytes int64 `toml:"max_size_bytes"` // Rotation ceiling per file, 0 disables rotation
	MaxBackups   int64 `toml:"max_backups"`    // Backup chain length

	// Buffering and timers
	BufferSize        int64 `toml:"buffer_size"`         // Channel buffer size
	FlushIntervalMs   int64 `toml:"flush_interval_ms"`   // Periodic file sync interval
	FlushTimeoutMs    int64 `toml:"flush_timeout_ms"`    // Default Flush wait bound
	ShutdownTimeoutMs int64 `toml:"shutdown_timeout_ms"` // Worker join bound, 0 = 2x flush timeout

	// Console output settings
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal diagnostics to stderr
}

// defaultConfig is the single source for all configurable default values.
// The defaults match the engine's lazy self-initialization path: console
// only, INFO threshold.
var defaultConfig = Config{
	Level:    LevelInfo,
	Target:   TargetConsole,
	FilePath: "inference_service.log",

	MaxSizeBytes: 10 * 1024 * 1024,
	MaxBackups:   5,

	BufferSize:        1024,
	FlushIntervalMs:   100,
	FlushTimeoutMs:    1000,
	ShutdownTimeoutMs: 0,

	ConsoleTarget: "stdout",

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	// Validate the loaded configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Target != TargetConsole && c.Target != TargetFile && c.Target != TargetBoth {
		return fmtErrorf("invalid target: %d (use 1=console, 2=file, 3=both)", c.Target)
	}

	if c.Target != TargetConsole && strings.TrimSpace(c.FilePath) == "" {
		return fmtErrorf("file_path cannot be empty when file output is enabled")
	}

	if c.MaxSizeBytes < 0 {
		return fmtErrorf("max_size_bytes cannot be negative: %d", c.MaxSizeBytes)
	}

	if c.MaxBackups < 1 {
		return fmtErrorf("max_backups must be at least 1: %d", c.MaxBackups)
	}

	if c.BufferSize <= 0 {
		return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
	}

	if c.FlushIntervalMs <= 0 || c.FlushTimeoutMs <= 0 {
		return fmtErrorf("flush interval and timeout must be positive")
	}

	if c.ShutdownTimeoutMs < 0 {
		return fmtErrorf("shutdown_timeout_ms cannot be negative: %d", c.ShutdownTimeoutMs)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// consoleEnabled reports whether records are written to the console target
func (c *Config) consoleEnabled() bool {
	return c.Target == TargetConsole || c.Target == TargetBoth
}

// fileEnabled reports whether records are written to the file target
func (c *Config) fileEnabled() bool {
	return c.Target == TargetFile || c.Target == TargetBoth
}
