package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/recompress/internal/config"
	"github.com/backmassage/recompress/internal/display"
	"github.com/backmassage/recompress/internal/ffmpeg"
	"github.com/backmassage/recompress/internal/lock"
	"github.com/backmassage/recompress/internal/logging"
	"github.com/backmassage/recompress/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var overrides *config.Overrides

	cmd := &cobra.Command{
		Use:           "recompress [dir]",
		Short:         "Re-encode MP4s and convert GIFs to MP4 for web delivery",
		Long:          "Re-encodes every MP4 in dir (default: ./public) with x264 CRF 26, keeping\nthe result only when smaller, and converts every GIF to a sibling MP4.\nAudio is stripped and outputs are tagged for progressive playback.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dirArg string
			if len(args) == 1 {
				dirArg = args[0]
			}
			return run(cmd.Context(), cmd.OutOrStdout(), overrides, cmd, dirArg)
		},
	}
	overrides = config.BindFlags(cmd.Flags())
	return cmd
}

// run wires config → logger → lock → pipeline. Only fatal problems are
// returned; per-file failures are reported by the pipeline and do not
// change the exit status.
func run(ctx context.Context, stdout io.Writer, o *config.Overrides, cmd *cobra.Command, dirArg string) error {
	// Phase 1: configuration. No logger yet, so errors go back to main.
	cfg, _, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.Apply(&cfg, cmd.Flags(), dirArg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := cfg.ResolveDir()
	if err != nil {
		return err
	}
	cfg.Dir = dir

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	// Phase 2: logger available.
	display.PrintBanner(stdout)
	log.Info("=== recompress v%s (%s) ===", version, commit)
	log.Info("Dir:     %s", cfg.Dir)
	log.Info("Encoder: %s %s CRF %d, preset %s, %s, no audio, faststart",
		cfg.FFmpegPath, ffmpeg.VideoCodec, ffmpeg.CRF, ffmpeg.Preset, ffmpeg.PixelFormat)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}

	held, err := lock.Acquire(cfg.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := held.Release(); err != nil {
			log.Warn("Release lock: %v", err)
		}
	}()

	// Phase 3: cancel on SIGINT/SIGTERM so the running ffmpeg is killed, its
	// partial output removed, and no further file is started.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Phase 4: run the batch.
	var echo io.Writer
	if cfg.Verbose {
		echo = os.Stderr
	}
	if _, err := pipeline.Run(ctx, &cfg, log, ffmpeg.NewExec(cfg.FFmpegPath, echo)); err != nil {
		return err
	}
	// An interrupted batch exits non-zero without another message.
	return ctx.Err()
}
