package pipeline

import "github.com/backmassage/recompress/internal/display"

// Outcome is the per-file result recorded in RunStats.
type Outcome string

const (
	OutcomeReplaced  Outcome = "compressed" // MP4 re-encoded and swapped in.
	OutcomeKept      Outcome = "kept"       // Re-encode was not smaller; original kept.
	OutcomeConverted Outcome = "converted"  // GIF converted; GIF kept alongside.
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomePlanned   Outcome = "dry-run"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
// Byte totals only include files that produced an output.
type RunStats struct {
	Total     int
	Current   int
	Replaced  int
	Kept      int
	Converted int
	Failed    int
	Skipped   int
	Planned   int

	TotalInputBytes  int64
	TotalOutputBytes int64

	Rows []display.SummaryRow
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// record counts one file's outcome. after is zero when no output exists.
func (s *RunStats) record(e Entry, o Outcome, before, after int64) {
	switch o {
	case OutcomeReplaced:
		s.Replaced++
	case OutcomeKept:
		s.Kept++
	case OutcomeConverted:
		s.Converted++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomePlanned:
		s.Planned++
	}
	if after > 0 {
		s.TotalInputBytes += before
		s.TotalOutputBytes += after
	}
	s.Rows = append(s.Rows, display.SummaryRow{
		Name:   e.Name,
		Action: string(o),
		Before: before,
		After:  after,
	})
}
