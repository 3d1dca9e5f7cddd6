// Package term decides whether recompress output is colored and holds the
// escape sequences the logger and banner splice into their lines. The
// sequences are empty strings while color is off.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/recompress/internal/config"
)

// Escape sequences used by logging and display. Set by [Configure].
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // reset
)

// Configure fills or clears the escape sequences for mode. The logger calls
// it once per run before printing anything.
func Configure(mode config.ColorMode) {
	on := wantColor(mode)
	seq := func(code string) string {
		if !on {
			return ""
		}
		return "\033[" + code + "m"
	}
	Red, Green, Yellow = seq("1;91"), seq("1;92"), seq("1;93")
	Blue, Magenta, Cyan = seq("1;94"), seq("1;95"), seq("1;96")
	NC = seq("0")
}

// Enabled reports whether the last Configure turned color on.
func Enabled() bool { return NC != "" }

// wantColor honors an explicit --color/--no-color. In auto mode color needs
// a terminal on stdout, an unset NO_COLOR and a TERM other than "dumb".
func wantColor(mode config.ColorMode) bool {
	if mode != config.ColorAuto {
		return mode == config.ColorAlways
	}
	if !IsTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return !strings.EqualFold(os.Getenv("TERM"), "dumb")
}

// IsTerminal reports whether f is a terminal. Cygwin and MSYS ptys count.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
