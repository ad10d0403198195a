// Package config loads chaosmeter settings from a TOML file.
//
// A configuration file is optional. Values it omits take the defaults of
// [Default], as do top sizes and PageRank settings left at zero. Thresholds
// of zero are kept. Command-line flags are applied on top by the caller.
//
// Example config.toml:
//
//	exclude = "test\\."
//	degree_threshold = 4
//	top = 10
//
//	[server]
//	addr = ":9090"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/errors"
)

const (
	appName  = "chaosmeter"
	fileName = "config.toml"

	// DefaultAddr is the listen address of the HTTP server.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies accepted by the HTTP server.
	DefaultMaxBodyBytes int64 = 10 << 20
)

// Config holds every tunable setting.
type Config struct {
	// Exclude is the default exclusion pattern applied while parsing.
	Exclude string `toml:"exclude"`

	DegreeThreshold     *int    `toml:"degree_threshold"`
	CentralityThreshold *int    `toml:"centrality_threshold"`
	Top                 int     `toml:"top"`
	PageRankTop         int     `toml:"pagerank_top"`
	PageRankDamping     float64 `toml:"pagerank_damping"`
	PageRankTolerance   float64 `toml:"pagerank_tolerance"`

	Server Server `toml:"server"`
}

// Server configures `chaosmeter serve`.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := analysis.DefaultOptions()
	return Config{
		DegreeThreshold:     opts.DegreeThreshold,
		CentralityThreshold: opts.CentralityThreshold,
		Top:                 opts.Top,
		PageRankTop:         opts.PageRankTop,
		PageRankDamping:     opts.Damping,
		PageRankTolerance:   opts.Tolerance,
		Server: Server{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Dir returns the configuration directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the location of the implicit configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the configuration.
//
// With an explicit path the file must exist. With an empty path the file at
// [DefaultPath] is read when present, and the defaults are returned when it
// is not.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Default(), nil
			}
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data, fills defaults and validates the result.
// Unknown keys are rejected so that typos do not pass silently.
func Parse(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := Default()
	if c.DegreeThreshold == nil {
		c.DegreeThreshold = d.DegreeThreshold
	}
	if c.CentralityThreshold == nil {
		c.CentralityThreshold = d.CentralityThreshold
	}
	if c.Top == 0 {
		c.Top = d.Top
	}
	if c.PageRankTop == 0 {
		c.PageRankTop = d.PageRankTop
	}
	if c.PageRankDamping == 0 {
		c.PageRankDamping = d.PageRankDamping
	}
	if c.PageRankTolerance == 0 {
		c.PageRankTolerance = d.PageRankTolerance
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = d.Server.MaxBodyBytes
	}
	return c
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case negative(c.DegreeThreshold):
		return errors.New(errors.ErrCodeInvalidConfig, "degree_threshold must not be negative")
	case negative(c.CentralityThreshold):
		return errors.New(errors.ErrCodeInvalidConfig, "centrality_threshold must not be negative")
	case c.Top < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "top must not be negative")
	case c.PageRankTop < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pagerank_top must not be negative")
	case c.PageRankDamping <= 0 || c.PageRankDamping >= 1:
		return errors.New(errors.ErrCodeInvalidConfig, "pagerank_damping must be in (0, 1)")
	case c.PageRankTolerance <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pagerank_tolerance must be positive")
	case c.Server.MaxBodyBytes < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must not be negative")
	}
	return nil
}

func negative(v *int) bool { return v != nil && *v < 0 }

// Options converts the analysis settings.
func (c Config) Options() analysis.Options {
	return analysis.Options{
		DegreeThreshold:     c.DegreeThreshold,
		CentralityThreshold: c.CentralityThreshold,
		Top:                 c.Top,
		PageRankTop:         c.PageRankTop,
		Damping:             c.PageRankDamping,
		Tolerance:           c.PageRankTolerance,
	}
}
