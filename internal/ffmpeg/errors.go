package ffmpeg

import (
	"errors"
	"strings"
)

// TailLength is how much of ffmpeg's stderr is surfaced when a job fails.
const TailLength = 300

// ExitError is returned by Exec.Run when ffmpeg could not be started or
// exited non-zero. Stderr holds everything ffmpeg wrote before exiting.
type ExitError struct {
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return "ffmpeg: " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Tail returns the last n characters of the captured stderr, counted in
// runes so a multi-byte character is never split.
func (e *ExitError) Tail(n int) string {
	r := []rune(e.Stderr)
	if len(r) > n {
		r = r[len(r)-n:]
	}
	return string(r)
}

// Diagnostic extracts the text to show the user for a failed job: the
// stderr tail when there is one, otherwise the error itself (for example
// when the binary is missing and nothing was written).
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if tail := strings.TrimSpace(exitErr.Tail(TailLength)); tail != "" {
			return tail
		}
		return exitErr.Err.Error()
	}
	return err.Error()
}
