// Package config loads boxroute settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/boxroute/config.toml, falling back to
// ~/.config/boxroute/config.toml. Every key is optional; missing keys keep
// their defaults:
//
//	[screen]
//	width = 80
//	height = 50
//	placement = "connectivity"
//
//	[block]
//	min_limited_width = 24
//
//	[connection]
//	box_distance = 1
//
//	[router]
//	policy = "permissive"
//	max_attempts = 20000
//	penalty = 50
//
//	[server]
//	addr = ":8080"
//	cache_entries = 256
//
// Command-line flags override file values.
//
// The keys max_height_per_width, min_length and max_length are accepted and
// validated but do not change layouts yet; a run that sets them logs a
// warning.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
	"github.com/matzehuels/boxroute/pkg/layout/route"
)

const appName = "boxroute"

// Screen sets the placement area.
type Screen struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Placement string `toml:"placement"`
}

// Router tunes connection routing.
type Router struct {
	Policy      string `toml:"policy"`
	MaxAttempts int    `toml:"max_attempts"`
	// Penalty is the cost of crossing a taken cell under the permissive policy.
	Penalty int `toml:"penalty"`
}

// Server configures the layout service.
type Server struct {
	Addr         string `toml:"addr"`
	CacheEntries int    `toml:"cache_entries"`
}

// File is the parsed configuration file.
type File struct {
	Screen     Screen                      `toml:"screen"`
	Block      layout.BlockConstraint      `toml:"block"`
	Connection layout.ConnectionConstraint `toml:"connection"`
	Router     Router                      `toml:"router"`
	Server     Server                      `toml:"server"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Screen: Screen{
			Width:     layout.DefaultScreenWidth,
			Height:    layout.DefaultScreenHeight,
			Placement: layout.PlacementVertical,
		},
		Block:      layout.DefaultBlockConstraint(),
		Connection: layout.DefaultConnectionConstraint(),
		Router: Router{
			Policy:      route.Strict.Name,
			MaxAttempts: route.DefaultMaxAttempts,
			Penalty:     pathfind.DefaultPenalty,
		},
		Server: Server{
			Addr:         ":8080",
			CacheEntries: 256,
		},
	}
}

// DefaultPath returns the configuration file path following the XDG base
// directory convention.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults. Unknown keys are an error
// so that typos do not go unnoticed.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault reads the file at [DefaultPath]. A missing file yields the
// defaults.
func LoadDefault() (File, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	f, err := Load(path)
	if errs.Is(err, errs.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return f, err
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (File, error) {
	f := Default()
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate reports the first setting that cannot be used.
func (f File) Validate() error {
	if err := f.Constraint().Validate(); err != nil {
		return err
	}
	if _, err := layout.NewPlacer(f.Screen.Placement, f.Screen.Width, 0); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "screen.placement")
	}
	if _, err := f.Policy(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "router.policy")
	}
	if f.Router.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "router.max_attempts must not be negative, got %d", f.Router.MaxAttempts)
	}
	if f.Router.Penalty < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "router.penalty must be at least 1, got %d", f.Router.Penalty)
	}
	if f.Server.CacheEntries < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.cache_entries must not be negative, got %d", f.Server.CacheEntries)
	}
	return nil
}

// Constraint returns the layout constraint the file describes.
func (f File) Constraint() layout.LayoutConstraint {
	return layout.LayoutConstraint{
		Connection: f.Connection,
		Block:      f.Block,
		MaxWidth:   f.Screen.Width,
		MaxHeight:  f.Screen.Height,
	}
}

// Policy returns the routing policy with the configured penalty applied.
func (f File) Policy() (route.Policy, error) {
	p, err := route.ParsePolicy(f.Router.Policy)
	if err != nil {
		return route.Policy{}, err
	}
	if !p.Backtrack {
		p.Cost = pathfind.Permissive{Penalty: f.Router.Penalty}
	}
	return p, nil
}

// Encode returns f as TOML.
func (f File) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
