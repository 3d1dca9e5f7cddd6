package config

// This file binds CLI flags onto a pflag.FlagSet (owned by the cobra root
// command). Flags only override the config file when the user actually set
// them, so values from recompress.toml survive an unset flag's zero value.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Overrides holds flag values captured during parsing. They are copied into
// a Config by Apply after the config file has been loaded.
type Overrides struct {
	ConfigPath string

	ffmpegPath string
	exclude    []string
	dryRun     bool
	verbose    bool
	logFile    string
	color      ColorMode
	forceColor bool
	noColor    bool
}

// BindFlags registers every recompress flag on fs and returns the struct
// the parsed values land in.
func BindFlags(fs *pflag.FlagSet) *Overrides {
	o := &Overrides{color: ColorAuto}

	fs.StringVarP(&o.ConfigPath, "config", "c", "", "Config file (default: ./"+DefaultFile+" when present)")
	fs.StringVar(&o.ffmpegPath, "ffmpeg", DefaultFFmpeg, "ffmpeg binary to invoke")
	fs.StringArrayVar(&o.exclude, "exclude", nil, "Skip files whose name matches this glob (repeatable)")
	fs.BoolVarP(&o.dryRun, "dry-run", "d", false, "Preview only; do not encode or touch files")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output (echo ffmpeg stderr)")
	fs.StringVarP(&o.logFile, "log", "l", "", "Append logs to file")
	fs.Var(&colorModeValue{&o.color}, "color-mode", "Color output: auto | always | never")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	return o
}

// Apply copies every flag the user set on fs into cfg. dirArg is the
// optional positional directory; it wins over the config file.
func (o *Overrides) Apply(cfg *Config, fs *pflag.FlagSet, dirArg string) {
	if strings.TrimSpace(dirArg) != "" {
		cfg.Dir = NormalizeDirArg(dirArg)
	}
	if fs.Changed("ffmpeg") {
		cfg.FFmpegPath = o.ffmpegPath
	}
	if fs.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if fs.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if fs.Changed("log") {
		cfg.LogFile = o.logFile
	}
	if fs.Changed("color-mode") {
		cfg.ColorMode = o.color
	}
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapter so ColorMode can be used with fs.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
