package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/backmassage/recompress/internal/config"
	"github.com/backmassage/recompress/internal/display"
	"github.com/backmassage/recompress/internal/ffmpeg"
	"github.com/backmassage/recompress/internal/logging"
)

// TempSuffix is appended to an MP4's base name for the in-progress re-encode.
const TempSuffix = "_compressed"

// Run is the top-level batch entry point. It lists cfg.Dir once, processes
// every MP4 and GIF sequentially through enc, and returns aggregate stats.
// The only error it returns is a failure to list the directory; per-file
// problems are logged and counted. Cancelling ctx stops the batch before
// the next file.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, enc ffmpeg.Encoder) (RunStats, error) {
	var stats RunStats

	entries, err := Discover(cfg.Dir, cfg.Exclude)
	if err != nil {
		return stats, err
	}
	stats.Total = len(entries)
	log.Debug(cfg.Verbose, "Found %d MP4/GIF files in %s", stats.Total, cfg.Dir)

	for i, e := range entries {
		if ctx.Err() != nil {
			log.Warn("Interrupted, %d file(s) not processed", stats.Total-i)
			break
		}
		stats.Current = i + 1
		log.Blank()
		log.Debug(cfg.Verbose, "[%d/%d] %s", stats.Current, stats.Total, e.Name)

		switch e.Kind {
		case KindMP4:
			compressMP4(ctx, cfg, log, enc, e, &stats)
		case KindGIF:
			convertGIF(ctx, cfg, log, enc, e, &stats)
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// compressMP4 re-encodes e into a sibling temp file and swaps it in only
// when it is strictly smaller. The original is never modified otherwise.
func compressMP4(ctx context.Context, cfg *config.Config, log *logging.Logger, enc ffmpeg.Encoder, e Entry, stats *RunStats) {
	before, ok := sourceSize(log, e, stats)
	if !ok {
		return
	}
	log.Info("🎬 Compressing MP4: %s (%s)", e.Name, display.FormatSize(before))

	tmp := tempPath(e)
	if exists(tmp) {
		log.Warn("  Skip (temporary path exists): %s", filepath.Base(tmp))
		stats.record(e, OutcomeSkipped, before, 0)
		return
	}

	if cfg.DryRun {
		log.Success("  [DRY] Would re-encode and keep the smaller file")
		stats.record(e, OutcomePlanned, before, 0)
		return
	}

	if err := enc.Run(ctx, ffmpeg.MP4Job(e.Path, tmp, cfg.Verbose)); err != nil {
		removeQuietly(tmp)
		logEncodeFailure(ctx, log, err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}

	fi, err := os.Stat(tmp)
	if err != nil {
		log.Error("  ✗ Encoder reported success but produced no output: %v", err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}
	after := fi.Size()

	if after >= before {
		if err := os.Remove(tmp); err != nil {
			log.Warn("  Could not remove %s: %v", filepath.Base(tmp), err)
		}
		log.Info("  ↩ Already optimal, keeping original")
		stats.record(e, OutcomeKept, before, before)
		return
	}

	// Rename within one directory replaces the original atomically.
	if err := os.Rename(tmp, e.Path); err != nil {
		removeQuietly(tmp)
		log.Error("  ✗ Cannot replace original: %v", err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}
	log.Success("  ✓ %s → %s (%d%% smaller)",
		display.FormatSize(before), display.FormatSize(after), display.SavedPercent(before, after))
	stats.record(e, OutcomeReplaced, before, after)
}

// convertGIF writes <base>.mp4 next to the GIF. The encoder writes to a
// temp sibling that is renamed into place on success, so a failed encode
// never truncates an existing <base>.mp4. The GIF itself is left in place
// so callers can update references before deleting it.
func convertGIF(ctx context.Context, cfg *config.Config, log *logging.Logger, enc ffmpeg.Encoder, e Entry, stats *RunStats) {
	before, ok := sourceSize(log, e, stats)
	if !ok {
		return
	}
	log.Info("🎞  Converting GIF → MP4: %s (%s)", e.Name, display.FormatSize(before))

	out := filepath.Join(filepath.Dir(e.Path), e.Base+".mp4")
	tmp := tempPath(e)
	if exists(tmp) {
		log.Warn("  Skip (temporary path exists): %s", filepath.Base(tmp))
		stats.record(e, OutcomeSkipped, before, 0)
		return
	}

	if cfg.DryRun {
		log.Success("  [DRY] Would write %s", filepath.Base(out))
		stats.record(e, OutcomePlanned, before, 0)
		return
	}

	if err := enc.Run(ctx, ffmpeg.GIFJob(e.Path, tmp, cfg.Verbose)); err != nil {
		removeQuietly(tmp)
		logEncodeFailure(ctx, log, err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}

	fi, err := os.Stat(tmp)
	if err != nil {
		log.Error("  ✗ Encoder reported success but produced no output: %v", err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}
	after := fi.Size()

	if err := os.Rename(tmp, out); err != nil {
		removeQuietly(tmp)
		log.Error("  ✗ Cannot write %s: %v", filepath.Base(out), err)
		stats.record(e, OutcomeFailed, before, 0)
		return
	}
	log.Success("  ✓ GIF (%s) → MP4 (%s) — %d%% smaller",
		display.FormatSize(before), display.FormatSize(after), display.SavedPercent(before, after))
	log.Info("  ℹ  Original GIF kept: update code references when ready.")
	stats.record(e, OutcomeConverted, before, after)
}

// sourceSize stats the entry. Files removed since the scan count as failed.
func sourceSize(log *logging.Logger, e Entry, stats *RunStats) (int64, bool) {
	fi, err := os.Stat(e.Path)
	if err != nil {
		log.Error("✗ Cannot read %s: %v", e.Name, err)
		stats.record(e, OutcomeFailed, 0, 0)
		return 0, false
	}
	return fi.Size(), true
}

func logEncodeFailure(ctx context.Context, log *logging.Logger, err error) {
	if ctx.Err() != nil {
		log.Warn("  Interrupted, partial output removed")
		return
	}
	log.Error("  ✗ FFmpeg error: %s", ffmpeg.Diagnostic(err))
}

// tempPath is the in-progress output for e: <base>_compressed.mp4 in the
// same directory, so the final rename never crosses a filesystem.
func tempPath(e Entry) string {
	return filepath.Join(filepath.Dir(e.Path), e.Base+TempSuffix+".mp4")
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// removeQuietly deletes a partial output; a missing file is the common case.
func removeQuietly(path string) {
	_ = os.Remove(path)
}

// --- Logging helpers ---

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	if len(stats.Rows) > 0 {
		log.Blank()
		log.Raw(display.SummaryTable(stats.Rows))
	}

	if cfg.DryRun {
		log.Info("Dry run: %d file(s) would be processed", stats.Planned)
	} else {
		log.Info("Done: %d compressed, %d kept, %d converted, %d failed, %d skipped",
			stats.Replaced, stats.Kept, stats.Converted, stats.Failed, stats.Skipped)
		if stats.TotalInputBytes > 0 {
			log.Info("Space saved: %s", display.FormatSizeWithSign(stats.SpaceSaved()))
		}
	}
	log.Blank()
	log.Success("✅ Compression complete.")
}
