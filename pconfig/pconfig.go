// Package pconfig resolves the engine's tunable thresholds — tree-coverage
// and degree cutoffs for the over-alignment trimmer, the adjacency-component
// proximity radius pinch merge checks against, and the merge RNG seed — into
// a single validated Config, following the functional-options-plus-resolved-
// struct pattern the rest of this module's constructors use (spec.md §4.5's
// N, §4.6's thresholds, treated as bare parameters there; SPEC_FULL.md §3.1
// makes them a loadable object).
package pconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cactuscore/pinchgraph/overalign"
)

// ErrInvalidMinTreeCoverage is returned when MinTreeCoverage falls outside
// [0, 1].
var ErrInvalidMinTreeCoverage = errors.New("pconfig: min tree coverage must be in [0, 1]")

// ErrInvalidMaxDegree is returned when MaxDegree is not positive.
var ErrInvalidMaxDegree = errors.New("pconfig: max degree must be positive")

// ErrInvalidExtensionSteps is returned when ExtensionSteps is negative.
var ErrInvalidExtensionSteps = errors.New("pconfig: extension steps must be non-negative")

// ErrInvalidProximityN is returned when ProximityN is negative.
var ErrInvalidProximityN = errors.New("pconfig: proximity N must be non-negative")

// Config holds the engine's resolved, validated thresholds.
type Config struct {
	// MinTreeCoverage is the over-alignment trimmer's coverage floor
	// (spec.md §4.6).
	MinTreeCoverage float64
	// MaxDegree is the over-alignment trimmer's black-degree ceiling
	// (spec.md §4.6).
	MaxDegree int
	// ExtensionSteps is the trimmer's BFS extension radius (spec.md §4.6
	// step 3).
	ExtensionSteps int
	// ProximityN is the adjacency-component overlap radius pinch merge
	// checks touched vertices against (spec.md §4.4, §4.5).
	ProximityN int
	// Seed drives any randomised adjacency-component selection (spec.md
	// §5 Ordering: "plus a seed for any randomised adjacency-component
	// selection").
	Seed int64
}

// Option mutates a Config during resolution. Later options override
// earlier ones; constructors validate their argument and return an error
// from Resolve/Load rather than silently accepting a nonsensical value.
type Option func(*Config) error

// Default returns the engine's built-in defaults: no coverage floor, a
// black-degree ceiling of 4, no extension (ExtensionSteps 0), strict
// component equality, and a fixed seed for reproducibility.
func Default() *Config {
	return &Config{
		MinTreeCoverage: 0.0,
		MaxDegree:       4,
		ExtensionSteps:  0,
		ProximityN:      0,
		Seed:            1,
	}
}

// WithMinTreeCoverage sets the trimmer's coverage floor.
func WithMinTreeCoverage(v float64) Option {
	return func(c *Config) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: got %v", ErrInvalidMinTreeCoverage, v)
		}
		c.MinTreeCoverage = v
		return nil
	}
}

// WithMaxDegree sets the trimmer's black-degree ceiling.
func WithMaxDegree(v int) Option {
	return func(c *Config) error {
		if v <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxDegree, v)
		}
		c.MaxDegree = v
		return nil
	}
}

// WithExtensionSteps sets the trimmer's BFS extension radius.
func WithExtensionSteps(v int) Option {
	return func(c *Config) error {
		if v < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidExtensionSteps, v)
		}
		c.ExtensionSteps = v
		return nil
	}
}

// WithProximityN sets the adjacency-component overlap radius.
func WithProximityN(v int) Option {
	return func(c *Config) error {
		if v < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidProximityN, v)
		}
		c.ProximityN = v
		return nil
	}
}

// WithSeed sets the merge RNG seed.
func WithSeed(v int64) Option {
	return func(c *Config) error {
		c.Seed = v
		return nil
	}
}

// OveralignConfig projects the trimmer-relevant fields into an
// overalign.Config, so a caller building a Trimmer from a resolved Config
// doesn't have to restate the three thresholds by hand.
func (c *Config) OveralignConfig() overalign.Config {
	return overalign.Config{
		MinTreeCoverage: c.MinTreeCoverage,
		MaxDegree:       c.MaxDegree,
		ExtensionSteps:  c.ExtensionSteps,
	}
}

// Resolve starts from Default and applies opts in order, stopping at the
// first validation failure.
func Resolve(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// fileConfig mirrors Config's fields for YAML decoding; yaml.v3 unmarshals
// into this shape and Load copies present fields onto the resolved Config,
// leaving Default's values for anything the document omits.
type fileConfig struct {
	MinTreeCoverage *float64 `yaml:"minTreeCoverage"`
	MaxDegree       *int     `yaml:"maxDegree"`
	ExtensionSteps  *int     `yaml:"extensionSteps"`
	ProximityN      *int     `yaml:"proximityN"`
	Seed            *int64   `yaml:"seed"`
}

// Load reads a YAML document at path into Default()'s values, then applies
// any opts on top (so callers can override a file-sourced config
// programmatically, e.g. in tests).
func Load(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pconfig: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("pconfig: parsing %s: %w", path, err)
	}

	cfg := Default()
	fileOpts := make([]Option, 0, 5)
	if fc.MinTreeCoverage != nil {
		fileOpts = append(fileOpts, WithMinTreeCoverage(*fc.MinTreeCoverage))
	}
	if fc.MaxDegree != nil {
		fileOpts = append(fileOpts, WithMaxDegree(*fc.MaxDegree))
	}
	if fc.ExtensionSteps != nil {
		fileOpts = append(fileOpts, WithExtensionSteps(*fc.ExtensionSteps))
	}
	if fc.ProximityN != nil {
		fileOpts = append(fileOpts, WithProximityN(*fc.ProximityN))
	}
	if fc.Seed != nil {
		fileOpts = append(fileOpts, WithSeed(*fc.Seed))
	}
	fileOpts = append(fileOpts, opts...)

	for _, opt := range fileOpts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
