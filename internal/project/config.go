// Package project reads obc.toml, the per-project settings file.
//
//	[lexer]
//	nested_comments = true
//	max_token_len = 4096
//
//	[diagnostics]
//	max = 50
//	color = "auto"
//
//	[parse]
//	jobs = 8
//	extensions = [".mod", ".Mod"]
//
// Command-line flags override whatever the file says.
package project

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"obc/internal/diag"
)

type LexerConfig struct {
	NestedComments bool   `toml:"nested_comments"`
	MaxTokenLen    uint32 `toml:"max_token_len"` // 0 = no limit
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"` // auto | on | off
}

type ParseConfig struct {
	Jobs       int      `toml:"jobs"` // 0 = GOMAXPROCS
	Extensions []string `toml:"extensions"`
}

type Config struct {
	Lexer       LexerConfig       `toml:"lexer"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Parse       ParseConfig       `toml:"parse"`

	// Path is where the config came from; empty for Default.
	Path string `toml:"-"`
}

// DefaultExtensions are the source suffixes picked up from directories.
var DefaultExtensions = []string{".mod", ".Mod", ".ob", ".obn"}

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

// ConfigError is returned by Load for a file that cannot be used.
// Code is always diag.ProjInvalidConfig; Err wraps the cause.
type ConfigError struct {
	Path string
	Code diag.Code
	Err  error
}

func (e *ConfigError) Error() string {
	return e.Code.ID() + ": " + e.Path + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalidConfig(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Code: diag.ProjInvalidConfig, Err: err}
}

func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
		Parse:       ParseConfig{Extensions: append([]string(nil), DefaultExtensions...)},
	}
}

// Load decodes path over Default. Unknown keys are rejected so typos in
// obc.toml do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, invalidConfig(path, fmt.Errorf("failed to parse TOML: %w", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, invalidConfig(path, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", ")))
	}
	if !meta.IsDefined("parse", "extensions") {
		cfg.Parse.Extensions = append([]string(nil), DefaultExtensions...)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, invalidConfig(path, err)
	}
	return cfg, nil
}

// Discover finds obc.toml above start and loads it. Without a file it
// returns Default and no error.
func Discover(start string) (Config, error) {
	path, ok, err := FindConfig(start)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch c.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("%w: diagnostics.color = %q (expected auto|on|off)", ErrInvalidValue, c.Diagnostics.Color)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("%w: diagnostics.max = %d", ErrInvalidValue, c.Diagnostics.Max)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("%w: parse.jobs = %d", ErrInvalidValue, c.Parse.Jobs)
	}
	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: parse.extensions entry %q must start with '.'", ErrInvalidValue, ext)
		}
	}
	return nil
}

// HasSourceExt reports whether name ends with one of the configured extensions.
func (c Config) HasSourceExt(name string) bool {
	exts := c.Parse.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
