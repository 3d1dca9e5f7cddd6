// Package ffmpeg owns everything that touches the encoder binary: the fixed
// argument templates for MP4 recompression and GIF conversion, the Encoder
// capability the pipeline depends on, its os/exec implementation, and the
// error type carrying captured stderr.
//
// Quality settings (codec, CRF, preset, pixel format) are constants. They
// are not configurable.
package ffmpeg
