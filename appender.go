// FILE: appender.go
package log4g

// buildAppender constructs one appender instance from its configuration.
// The config has already passed validation; errors here come from the
// environment (missing directory permissions and the like).
func buildAppender(name string, ac AppenderConfig, cfg *Config) (Appender, error) {
	switch ac.Type {
	case AppenderConsole:
		return newConsoleAppender(name, ac, cfg.TimestampFormat), nil
	case AppenderFile:
		return newFileAppender(name, ac, cfg.TimestampFormat)
	case AppenderNoop:
		return &noopAppender{name: name}, nil
	default:
		return nil, fmtErrorf("unknown appender type '%s'", ac.Type)
	}
}

// noopAppender discards every event. Useful for silencing a category from
// configuration without rewiring its bindings.
type noopAppender struct {
	name string
}

func (a *noopAppender) Append(*Event) {}
