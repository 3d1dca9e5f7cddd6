// Command recompress shrinks the video assets in one directory: MP4s are
// re-encoded with x264 and replaced when smaller, GIFs are converted to
// sibling MP4s. Audio is stripped and every output gets faststart.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "recompress: %v\n", err)
		}
		os.Exit(1)
	}
}
