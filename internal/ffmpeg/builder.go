package ffmpeg

import "strconv"

// Fixed encode parameters shared by both job kinds.
const (
	VideoCodec  = "libx264"
	CRF         = 26
	Preset      = "slow"
	PixelFormat = "yuv420p"

	// EvenScaleFilter rounds each dimension down to an even number; x264
	// rejects odd widths and heights with yuv420p.
	EvenScaleFilter = "scale=trunc(iw/2)*2:trunc(ih/2)*2"
)

// Job describes one encoder invocation. Args is everything after the binary
// name and already contains Source and Dest.
type Job struct {
	Source string
	Dest   string
	Args   []string
}

// MP4Job re-encodes src into dest: x264 at the fixed CRF and preset, audio
// dropped, moov atom moved to the front for progressive playback.
func MP4Job(src, dest string, verbose bool) Job {
	args := preamble(verbose)
	args = append(args, "-i", src)
	args = appendVideoCodec(args)
	args = append(args,
		"-an",
		"-movflags", "faststart",
		"-pix_fmt", PixelFormat,
		"-y", dest,
	)
	return Job{Source: src, Dest: dest, Args: args}
}

// GIFJob converts an animated GIF into an MP4 at dest with the same codec
// settings as MP4Job, scaling to even dimensions first.
func GIFJob(src, dest string, verbose bool) Job {
	args := preamble(verbose)
	args = append(args,
		"-i", src,
		"-movflags", "faststart",
		"-pix_fmt", PixelFormat,
		"-vf", EvenScaleFilter,
	)
	args = appendVideoCodec(args)
	args = append(args, "-an", "-y", dest)
	return Job{Source: src, Dest: dest, Args: args}
}

// preamble returns the flags every invocation starts with. stdin is closed
// off so a stray prompt can never block the batch.
func preamble(verbose bool) []string {
	args := make([]string, 0, 24)
	args = append(args, "-hide_banner", "-nostdin")
	if verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	return args
}

func appendVideoCodec(args []string) []string {
	return append(args,
		"-c:v", VideoCodec,
		"-crf", strconv.Itoa(CRF),
		"-preset", Preset,
	)
}
