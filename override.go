// FILE: override.go
package log4g

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the runtime's current
// configuration. Each override should be in the format "key=value". The
// configuration is cloned before modification and reapplied as a whole, so a
// failed override leaves the running configuration untouched.
//
// Scalar knobs use their toml key ("timestamp_format=..."). Category levels
// are addressed as "category.<name>.level=<level>".
func (r *Runtime) ApplyOverride(overrides ...string) error {
	cfg := r.getConfig().Clone()

	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return r.ApplyConfig(cfg)
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "timestamp_format":
		if strings.TrimSpace(value) == "" {
			return fmtErrorf("timestamp_format cannot be empty")
		}
		cfg.TimestampFormat = value

	case "shutdown_timeout_ms":
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid shutdown_timeout_ms value '%s': %w", value, err)
		}
		cfg.ShutdownTimeoutMs = ms

	case "internal_errors_to_stderr":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid internal_errors_to_stderr value '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = enabled

	default:
		// Category level overrides: category.<name>.level
		if rest, ok := strings.CutPrefix(key, "category."); ok {
			name, suffix, found := strings.Cut(rest, ".")
			if !found || suffix != "level" || name == "" {
				return fmtErrorf("unknown config key: %s", key)
			}
			cc, exists := cfg.Categories[name]
			if !exists {
				return fmtErrorf("unknown category in override: %s", name)
			}
			if _, err := Level(value); err != nil {
				return err
			}
			cc.Level = value
			cfg.Categories[name] = cc
			return nil
		}
		return fmtErrorf("unknown config key: %s", key)
	}

	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("log4g: multiple configuration errors:")
	for i, err := range errs {
		errMsg := err.Error()
		// Remove "log4g: " prefix from individual errors to avoid duplication
		errMsg = strings.TrimPrefix(errMsg, "log4g: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}
