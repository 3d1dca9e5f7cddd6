package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Encoder runs one encode job to completion. Implementations must block
// until the job finishes and return a non-nil error on any failure.
type Encoder interface {
	Run(ctx context.Context, job Job) error
}

// Exec is the Encoder backed by a real ffmpeg process.
type Exec struct {
	// Binary is the ffmpeg executable, a bare name resolved on PATH or a path.
	Binary string
	// Echo, when non-nil, receives a live copy of ffmpeg's stderr.
	Echo io.Writer
}

// NewExec returns an Exec for binary. When echo is non-nil ffmpeg's stderr is
// tee'd to it in real time in addition to being captured.
func NewExec(binary string, echo io.Writer) *Exec {
	return &Exec{Binary: binary, Echo: echo}
}

// Run starts ffmpeg with job.Args and waits for it. stdout is discarded;
// stderr is captured and attached to the returned *ExitError on failure.
// Cancelling ctx kills the process.
func (e *Exec) Run(ctx context.Context, job Job) error {
	cmd := exec.CommandContext(ctx, e.Binary, job.Args...)

	var stderrBuf bytes.Buffer
	if e.Echo != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, e.Echo)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return &ExitError{Stderr: stderrBuf.String(), Err: err}
	}
	return nil
}
