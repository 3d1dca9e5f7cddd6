// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag binding, and validation. Encoder quality settings are
// deliberately absent; they are fixed in package ffmpeg.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file looked up in the working directory when
// --config is not given.
const DefaultFile = "recompress.toml"

// Defaults for the target directory and encoder binary.
const (
	DefaultDir    = "public"
	DefaultFFmpeg = "ffmpeg"
)

// ErrNoDir is returned by Validate when no target directory is configured.
var ErrNoDir = errors.New("target directory must not be empty")

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [Load] from a TOML file, and finally by explicitly set CLI flags
// (see [Overrides.Apply]).
type Config struct {
	// Dir is the directory whose MP4 and GIF files are processed. Relative
	// paths are resolved against the working directory by [Config.ResolveDir].
	Dir string `toml:"dir"`

	// FFmpegPath is the encoder binary. Default: "ffmpeg" (looked up on PATH).
	FFmpegPath string `toml:"ffmpeg"`

	// Exclude holds glob patterns matched against file names; matches are
	// ignored by the scanner.
	Exclude []string `toml:"exclude"`

	DryRun    bool      `toml:"dry_run"`
	Verbose   bool      `toml:"verbose"`
	ColorMode ColorMode `toml:"color"`   // Default: "auto".
	LogFile   string    `toml:"log_file"` // Optional append-only log file.
}

// DefaultConfig returns the built-in settings: the "public" directory,
// ffmpeg from PATH, no excludes.
func DefaultConfig() Config {
	return Config{
		Dir:        DefaultDir,
		FFmpegPath: DefaultFFmpeg,
		ColorMode:  ColorAuto,
	}
}

// Load returns DefaultConfig overlaid with the TOML file at path. An empty
// path means DefaultFile in the working directory, which may be absent. An
// explicit path must exist. The second return value reports whether a file
// was read.
func Load(path string) (Config, bool, error) {
	cfg := DefaultConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, true, fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, true, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, requires a target directory and encoder, and
// makes sure every exclude pattern compiles.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	c.Dir = NormalizeDirArg(strings.TrimSpace(c.Dir))
	if c.Dir == "" {
		return ErrNoDir
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}

	for _, p := range c.Exclude {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

// ResolveDir returns the absolute form of Dir. It does not check that the
// directory exists; the scanner reports that.
func (c *Config) ResolveDir() (string, error) {
	abs, err := filepath.Abs(c.Dir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", c.Dir, err)
	}
	return abs, nil
}
