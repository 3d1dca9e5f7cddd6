package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/srv/site/public", "/srv/site/public"},
		{"single trailing slash", "/srv/site/public/", "/srv/site/public"},
		{"multiple trailing slashes", "/srv/site/public///", "/srv/site/public"},
		{"root path", "/", "/"},
		{"relative path", "public", "public"},
		{"relative with slash", "public/", "public"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrNoDir) {
		t.Errorf("Validate() = %v, want ErrNoDir", err)
	}

	cfg.Dir = "assets/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.Dir != "assets" {
		t.Errorf("Dir = %q, want trailing slash stripped", cfg.Dir)
	}
}

func TestValidate_RequiresFFmpeg(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFmpegPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with an empty ffmpeg path")
	}
}

func TestValidate_ExcludePatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{"*.min.mp4", "hero-*"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	cfg.Exclude = []string{"[unterminated"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a malformed glob")
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dir != DefaultDir {
		t.Errorf("default Dir = %q, want %q", cfg.Dir, DefaultDir)
	}
	if cfg.FFmpegPath != DefaultFFmpeg {
		t.Errorf("default FFmpegPath = %q, want %q", cfg.FFmpegPath, DefaultFFmpeg)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("default Exclude = %v, want none", cfg.Exclude)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recompress.toml")
	writeFile(t, path, `
dir = "static/media"
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
exclude = ["*.keep.mp4"]
dry_run = true
color = "never"
log_file = "/tmp/recompress.log"
`)

	cfg, found, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Error("Load reported no file read")
	}
	if cfg.Dir != "static/media" {
		t.Errorf("Dir = %q", cfg.Dir)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "*.keep.mp4" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be true")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q", cfg.ColorMode)
	}
	if cfg.LogFile != "/tmp/recompress.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	writeFile(t, path, `dry_run = true`)

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != DefaultDir || cfg.FFmpegPath != DefaultFFmpeg || cfg.ColorMode != ColorAuto {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, `crf = 18`)

	if _, _, err := Load(path); err == nil {
		t.Fatal("Load should reject unknown keys")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load should fail for a missing explicit config file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped ErrNotExist", err)
	}
}

func TestLoad_NoDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, found, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Error("Load reported a file when none exists")
	}
	if cfg.Dir != DefaultDir {
		t.Errorf("Dir = %q, want default", cfg.Dir)
	}
}

func TestOverrides_Apply(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		dir   string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "unset flags keep file values",
			args: nil,
			check: func(t *testing.T, cfg Config) {
				if cfg.FFmpegPath != "/from/file/ffmpeg" || !cfg.DryRun || cfg.ColorMode != ColorAlways {
					t.Errorf("file values overridden: %+v", cfg)
				}
			},
		},
		{
			name: "positional dir wins",
			dir:  "site/public/",
			check: func(t *testing.T, cfg Config) {
				if cfg.Dir != "site/public" {
					t.Errorf("Dir = %q", cfg.Dir)
				}
			},
		},
		{
			name: "explicit flags override",
			args: []string{"--ffmpeg", "/usr/bin/ffmpeg", "--dry-run=false", "-v", "--log", "run.log"},
			check: func(t *testing.T, cfg Config) {
				if cfg.FFmpegPath != "/usr/bin/ffmpeg" {
					t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
				}
				if cfg.DryRun {
					t.Error("DryRun should be cleared")
				}
				if !cfg.Verbose {
					t.Error("Verbose should be set")
				}
				if cfg.LogFile != "run.log" {
					t.Errorf("LogFile = %q", cfg.LogFile)
				}
			},
		},
		{
			name: "exclude appends",
			args: []string{"--exclude", "a*.gif", "--exclude", "b*.mp4"},
			check: func(t *testing.T, cfg Config) {
				want := "*.keep.mp4,a*.gif,b*.mp4"
				if got := strings.Join(cfg.Exclude, ","); got != want {
					t.Errorf("Exclude = %q, want %q", got, want)
				}
			},
		},
		{
			name: "no-color beats file",
			args: []string{"--no-color"},
			check: func(t *testing.T, cfg Config) {
				if cfg.ColorMode != ColorNever {
					t.Errorf("ColorMode = %q", cfg.ColorMode)
				}
			},
		},
		{
			name: "color-mode value",
			args: []string{"--color-mode", "NEVER"},
			check: func(t *testing.T, cfg Config) {
				if cfg.ColorMode != ColorNever {
					t.Errorf("ColorMode = %q", cfg.ColorMode)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("recompress", pflag.ContinueOnError)
			o := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}

			cfg := DefaultConfig()
			cfg.FFmpegPath = "/from/file/ffmpeg"
			cfg.DryRun = true
			cfg.ColorMode = ColorAlways
			cfg.Exclude = []string{"*.keep.mp4"}

			o.Apply(&cfg, fs, tt.dir)
			tt.check(t, cfg)
		})
	}
}

func TestColorModeFlag_RejectsUnknown(t *testing.T) {
	fs := pflag.NewFlagSet("recompress", pflag.ContinueOnError)
	fs.SetOutput(discard{})
	BindFlags(fs)
	if err := fs.Parse([]string{"--color-mode", "sometimes"}); err == nil {
		t.Error("Parse should reject an unknown color mode")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir on Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
