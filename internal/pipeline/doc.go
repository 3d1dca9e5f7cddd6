// Package pipeline scans the target directory once, then processes each MP4
// and GIF entry strictly in order: MP4s are re-encoded and replace the
// original only when smaller, GIFs are converted to a sibling MP4 and left
// in place. A failure on one file is logged and never stops the batch.
package pipeline
