// Package config reads generator settings from INI-style files.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gcfg.v1"
)

// ExampleFile documents every setting with its default value.
const ExampleFile = `[kernel]

# Revolution backend, one of:
# [ lathe | sdfx ]
# lathe sweeps the profile directly and is exact at the profile vertices.
# sdfx evaluates a signed distance field and meshes it with marching cubes.
backend = lathe

# Marching-cubes cells along the longest side of the bounding box (sdfx only).
mesh-cells = 200

# Distance below which two mesh vertices are merged (lathe only).
weld-tolerance = 1e-4

[engine]

# Hard limit for evaluating one design source.
timeout = 5s
`

// Backend names a kernel implementation.
type Backend string

const (
	BackendLathe Backend = "lathe"
	BackendSdfx  Backend = "sdfx"
)

// UnmarshalText accepts backend names case-insensitively.
func (b *Backend) UnmarshalText(text []byte) error {
	switch v := Backend(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case BackendLathe, BackendSdfx:
		*b = v
		return nil
	}
	return fmt.Errorf("unknown backend %q, want lathe or sdfx", text)
}

// Duration is a time.Duration read from strings such as "250ms" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// KernelConfig selects and tunes the revolution backend.
type KernelConfig struct {
	Backend       Backend
	MeshCells     int     `gcfg:"mesh-cells"`
	WeldTolerance float64 `gcfg:"weld-tolerance"`
}

// EngineConfig tunes DSL evaluation.
type EngineConfig struct {
	Timeout Duration
}

// Config is the full set of generator settings.
type Config struct {
	Kernel KernelConfig
	Engine EngineConfig
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			Backend:       BackendLathe,
			MeshCells:     200,
			WeldTolerance: 1e-4,
		},
		Engine: EngineConfig{
			Timeout: Duration(5 * time.Second),
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads settings from text over the defaults and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (k *KernelConfig) ValidBackend() bool {
	return k.Backend == BackendLathe || k.Backend == BackendSdfx
}
func (k *KernelConfig) ValidMeshCells() bool {
	return k.MeshCells > 0
}
func (k *KernelConfig) ValidWeldTolerance() bool {
	return k.WeldTolerance > 0 && k.WeldTolerance < 1
}
func (e *EngineConfig) ValidTimeout() bool {
	return e.Timeout > 0
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	switch {
	case !c.Kernel.ValidBackend():
		return fmt.Errorf("kernel.backend %q is not lathe or sdfx", c.Kernel.Backend)
	case !c.Kernel.ValidMeshCells():
		return fmt.Errorf("kernel.mesh-cells must be positive, got %d", c.Kernel.MeshCells)
	case !c.Kernel.ValidWeldTolerance():
		return fmt.Errorf("kernel.weld-tolerance must be in (0, 1), got %g", c.Kernel.WeldTolerance)
	case !c.Engine.ValidTimeout():
		return fmt.Errorf("engine.timeout must be positive, got %s", c.Engine.Timeout)
	}
	return nil
}
