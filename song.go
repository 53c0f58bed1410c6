package noteblock

import (
	"sort"
	"time"
)

// LeadIn is the delay, in milliseconds, that Normalize leaves before the first
// note of a song.
const LeadIn = 1000

type (
	// Song is the result of a conversion: a list of notes, the total length of
	// the song and statistics about how many source notes could be converted.
	// Until Sort is called, the notes are in the order they were added.
	Song struct {
		Name   string `yaml:",omitempty" json:",omitempty"`
		Length int64  // length of the song in milliseconds
		Stats  Stats
		Notes  []Note `yaml:",flow"`
	}
)

// NewSong returns an empty song with the given name.
func NewSong(name string) *Song {
	return &Song{Name: name}
}

// Add appends a note to the song. It does not touch the length.
func (s *Song) Add(n Note) {
	s.Notes = append(s.Notes, n)
}

// Sort orders the notes by ascending time. Notes with equal times keep the
// order they were added in.
func (s *Song) Sort() {
	sort.SliceStable(s.Notes, func(i, j int) bool {
		return s.Notes[i].Time < s.Notes[j].Time
	})
}

// Normalize shifts the song so that the first note plays at LeadIn
// milliseconds. The notes are assumed to be sorted.
//
// Note times are only shifted when the first note is later than LeadIn, but
// the length is always adjusted by firstTime - LeadIn. For songs that start
// early, this makes the length grow by the missing lead-in.
func (s *Song) Normalize() {
	if len(s.Notes) == 0 {
		return
	}
	shift := s.Notes[0].Time - LeadIn
	if s.Notes[0].Time > LeadIn {
		for i := range s.Notes {
			s.Notes[i].Time -= shift
		}
	}
	s.Length -= shift
}

// Duration returns the length of the song as a time.Duration.
func (s *Song) Duration() time.Duration {
	return time.Duration(s.Length) * time.Millisecond
}

// Copy makes a deep copy of a Song.
func (s *Song) Copy() *Song {
	notes := make([]Note, len(s.Notes))
	copy(notes, s.Notes)
	return &Song{Name: s.Name, Length: s.Length, Stats: s.Stats, Notes: notes}
}

// InstrumentCounts returns how many notes each instrument plays.
func (s *Song) InstrumentCounts() map[Instrument]int {
	ret := map[Instrument]int{}
	for _, n := range s.Notes {
		ret[n.Instrument()]++
	}
	return ret
}
