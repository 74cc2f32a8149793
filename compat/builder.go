// FILE: compat/builder.go
package compat

import (
	"fmt"

	"github.com/LuoJinghua/log4g"
)

// Builder provides a flexible way to create configured logger adapters for
// gnet and fasthttp. It can use an existing *log4g.Runtime or create a new
// one from a *log4g.Config, and routes each framework under its own category
// ("gnet", "fasthttp") so their output can be rebound or silenced through
// category configuration.
type Builder struct {
	runtime *log4g.Runtime
	cfg     *log4g.Config
	err     error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRuntime specifies an existing runtime to use for the adapters.
// Recommended for applications that already have a central logging runtime.
// If this is set WithConfig is ignored.
func (b *Builder) WithRuntime(r *log4g.Runtime) *Builder {
	if r == nil {
		b.err = fmt.Errorf("log4g/compat: provided runtime cannot be nil")
		return b
	}
	b.runtime = r
	return b
}

// WithConfig provides a configuration for a new runtime instance.
// This is used only if an existing runtime is NOT provided via WithRuntime.
// If neither is used, a default runtime is created.
func (b *Builder) WithConfig(cfg *log4g.Config) *Builder {
	b.cfg = cfg
	return b
}

// getRuntime resolves the runtime to be used, creating one if necessary
func (b *Builder) getRuntime() (*log4g.Runtime, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.runtime != nil {
		return b.runtime, nil
	}

	r := log4g.NewRuntime()
	cfg := b.cfg
	if cfg == nil {
		cfg = log4g.DefaultConfig()
	}

	if err := r.ApplyConfig(cfg); err != nil {
		return nil, err
	}

	// Cache the newly created runtime for subsequent builds with this builder
	b.runtime = r
	return r, nil
}

// BuildGnet creates a gnet adapter logging under the "gnet" category
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	r, err := b.getRuntime()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(r.GetLogger("gnet"), opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter logging under the "fasthttp" category
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	r, err := b.getRuntime()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(r.GetLogger("fasthttp"), opts...), nil
}

// GetRuntime returns the underlying runtime, initializing it if needed
func (b *Builder) GetRuntime() (*log4g.Runtime, error) {
	return b.getRuntime()
}
