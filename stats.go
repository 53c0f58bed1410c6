package noteblock

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats counts the note-on events seen during a conversion. Every note-on is
// either converted or skipped, so Total == Converted + Skipped.
type Stats struct {
	Total     int
	Converted int
	Skipped   int
}

// SkippedPercent returns the share of skipped notes, 0 if there were no notes.
func (s Stats) SkippedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Skipped) * 100 / float64(s.Total)
}

// String returns the human readable summary of the statistics.
func (s Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("total notes: %d, converted: %d, skipped: %d (%.1f%%)",
		s.Total, s.Converted, s.Skipped, s.SkippedPercent())
}
