// FILE: config.go
package log4g

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds the full runtime configuration: appender definitions, the
// category set, and runtime knobs.
type Config struct {
	// Runtime knobs
	TimestampFormat        string `toml:"timestamp_format"`          // Time format used by layouts
	ShutdownTimeoutMs      int64  `toml:"shutdown_timeout_ms"`       // Default join timeout, 0=unbounded
	InternalErrorsToStderr bool   `toml:"internal_errors_to_stderr"` // Write runtime diagnostics to stderr

	// Appender definitions keyed by appender name
	Appenders map[string]AppenderConfig `toml:"appender"`

	// Category definitions keyed by category name
	Categories map[string]CategoryConfig `toml:"category"`
}

// AppenderConfig describes one appender instance to construct.
type AppenderConfig struct {
	Type   string `toml:"type"`   // "console", "file", or "noop"
	Layout string `toml:"layout"` // "txt", "json", or "raw"

	// Console settings
	Target string `toml:"target"` // "stdout" or "stderr"

	// File settings
	Directory  string `toml:"directory"`
	Name       string `toml:"name"`        // Base name for log files
	Extension  string `toml:"extension"`   // Without leading dot
	MaxSizeKB  int64  `toml:"max_size_kb"` // Rotation threshold, 0=disabled
	BufferSize int64  `toml:"buffer_size"` // Write buffer size in bytes
}

// CategoryConfig describes one category binding.
type CategoryConfig struct {
	Appenders []string `toml:"appenders"`
	Level     string   `toml:"level"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	TimestampFormat:        time.RFC3339Nano,
	ShutdownTimeoutMs:      0,
	InternalErrorsToStderr: false,

	Appenders: map[string]AppenderConfig{
		"console": {
			Type:   AppenderConsole,
			Layout: "txt",
			Target: "stdout",
		},
	},

	Categories: map[string]CategoryConfig{
		DefaultCategory: {
			Appenders: []string{"console"},
			Level:     "info",
		},
	},
}

// DefaultConfig returns a deep copy of the default configuration
func DefaultConfig() *Config {
	copied := defaultConfig
	return copied.Clone()
}

// scalarConfig mirrors the flat knobs of Config for loader registration;
// the appender and category tables are decoded separately.
type scalarConfig struct {
	TimestampFormat        string `toml:"timestamp_format"`
	ShutdownTimeoutMs      int64  `toml:"shutdown_timeout_ms"`
	InternalErrorsToStderr bool   `toml:"internal_errors_to_stderr"`
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	// Register scalar knobs for proper defaulting
	scalars := scalarConfig{
		TimestampFormat:        cfg.TimestampFormat,
		ShutdownTimeoutMs:      cfg.ShutdownTimeoutMs,
		InternalErrorsToStderr: cfg.InternalErrorsToStderr,
	}
	if err := loader.RegisterStruct("log4g.", scalars); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	// Extract scalar values into our Config struct
	if err := extractScalars(loader, "log4g.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	// Extract the appender and category tables
	if val, found := loader.Get("log4g.appender"); found {
		appenders, err := decodeAppenderTable(val)
		if err != nil {
			return nil, err
		}
		cfg.Appenders = appenders
	}
	if val, found := loader.Get("log4g.category"); found {
		categories, err := decodeCategoryTable(val)
		if err != nil {
			return nil, err
		}
		cfg.Categories = categories
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractScalars copies scalar values from the loader into cfg by toml tag
func extractScalars(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if fieldValue.Kind() == reflect.Map {
			continue // Tables are decoded separately
		}

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
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

// decodeAppenderTable converts a loaded TOML table into appender definitions
func decodeAppenderTable(val any) (map[string]AppenderConfig, error) {
	table, ok := val.(map[string]any)
	if !ok {
		return nil, fmtErrorf("appender section must be a table, got %T", val)
	}

	out := make(map[string]AppenderConfig, len(table))
	for name, raw := range table {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmtErrorf("appender '%s' must be a table, got %T", name, raw)
		}
		var ac AppenderConfig
		for key, v := range entry {
			var err error
			switch key {
			case "type":
				ac.Type, err = asString(key, v)
			case "layout":
				ac.Layout, err = asString(key, v)
			case "target":
				ac.Target, err = asString(key, v)
			case "directory":
				ac.Directory, err = asString(key, v)
			case "name":
				ac.Name, err = asString(key, v)
			case "extension":
				ac.Extension, err = asString(key, v)
			case "max_size_kb":
				ac.MaxSizeKB, err = asInt64(key, v)
			case "buffer_size":
				ac.BufferSize, err = asInt64(key, v)
			default:
				err = fmtErrorf("unknown appender key '%s'", key)
			}
			if err != nil {
				return nil, fmtErrorf("appender '%s': %w", name, err)
			}
		}
		out[name] = ac
	}
	return out, nil
}

// decodeCategoryTable converts a loaded TOML table into category definitions
func decodeCategoryTable(val any) (map[string]CategoryConfig, error) {
	table, ok := val.(map[string]any)
	if !ok {
		return nil, fmtErrorf("category section must be a table, got %T", val)
	}

	out := make(map[string]CategoryConfig, len(table))
	for name, raw := range table {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmtErrorf("category '%s' must be a table, got %T", name, raw)
		}
		var cc CategoryConfig
		for key, v := range entry {
			switch key {
			case "level":
				s, err := asString(key, v)
				if err != nil {
					return nil, fmtErrorf("category '%s': %w", name, err)
				}
				cc.Level = s
			case "appenders":
				list, ok := v.([]any)
				if !ok {
					return nil, fmtErrorf("category '%s': appenders must be a list, got %T", name, v)
				}
				for _, item := range list {
					s, ok := item.(string)
					if !ok {
						return nil, fmtErrorf("category '%s': appender names must be strings, got %T", name, item)
					}
					cc.Appenders = append(cc.Appenders, s)
				}
			default:
				return nil, fmtErrorf("category '%s': unknown key '%s'", name, key)
			}
		}
		out[name] = cc
	}
	return out, nil
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmtErrorf("%s must be string, got %T", key, v)
	}
	return s, nil
}

func asInt64(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmtErrorf("%s must be int64, got %T", key, v)
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.ShutdownTimeoutMs < 0 {
		return fmtErrorf("shutdown_timeout_ms cannot be negative: %d", c.ShutdownTimeoutMs)
	}

	if len(c.Categories) == 0 {
		return fmtErrorf("at least one category must be defined")
	}

	if _, ok := c.Categories[DefaultCategory]; !ok {
		return fmtErrorf("a '%s' category must be defined", DefaultCategory)
	}

	for name, ac := range c.Appenders {
		if strings.TrimSpace(name) == "" {
			return fmtErrorf("appender name cannot be empty")
		}
		if err := ac.validate(); err != nil {
			return fmtErrorf("appender '%s': %w", name, err)
		}
	}

	for name, cc := range c.Categories {
		if strings.TrimSpace(name) == "" {
			return fmtErrorf("category name cannot be empty")
		}
		if len(cc.Appenders) == 0 {
			return fmtErrorf("category '%s' must bind at least one appender", name)
		}
		for _, an := range cc.Appenders {
			if _, ok := c.Appenders[an]; !ok {
				return fmtErrorf("category '%s' references undefined appender '%s'", name, an)
			}
		}
		if _, err := Level(cc.Level); err != nil {
			return fmtErrorf("category '%s': %w", name, err)
		}
	}

	return nil
}

// validate checks a single appender definition
func (c *AppenderConfig) validate() error {
	switch c.Type {
	case AppenderConsole:
		if c.Target != "" && c.Target != "stdout" && c.Target != "stderr" {
			return fmtErrorf("invalid target: '%s' (use stdout or stderr)", c.Target)
		}
	case AppenderFile:
		if strings.TrimSpace(c.Name) == "" {
			return fmtErrorf("file appender requires a name")
		}
		if strings.HasPrefix(c.Extension, ".") {
			return fmtErrorf("extension should not start with dot: %s", c.Extension)
		}
		if c.MaxSizeKB < 0 {
			return fmtErrorf("max_size_kb cannot be negative: %d", c.MaxSizeKB)
		}
		if c.BufferSize < 0 {
			return fmtErrorf("buffer_size cannot be negative: %d", c.BufferSize)
		}
	case AppenderNoop:
		// No settings
	default:
		return fmtErrorf("invalid type: '%s' (use console, file, or noop)", c.Type)
	}

	if c.Layout != "" && c.Layout != "txt" && c.Layout != "json" && c.Layout != "raw" {
		return fmtErrorf("invalid layout: '%s' (use txt, json, or raw)", c.Layout)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copied := *c

	copied.Appenders = make(map[string]AppenderConfig, len(c.Appenders))
	for name, ac := range c.Appenders {
		copied.Appenders[name] = ac
	}

	copied.Categories = make(map[string]CategoryConfig, len(c.Categories))
	for name, cc := range c.Categories {
		cc.Appenders = append([]string(nil), cc.Appenders...)
		copied.Categories[name] = cc
	}

	return &copied
}
