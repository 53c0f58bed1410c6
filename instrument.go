package noteblock

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Instrument is one of the note block instrument classes of the target
// palette. Each class can play PitchSpan consecutive semitones, starting from
// the MIDI pitch returned by Offset.
type Instrument int

const (
	Harp Instrument = iota
	BaseDrum
	Snare
	Hat
	Bass
	Flute
	Bell
	Guitar
	Chime
	Xylophone
	IronXylophone
	CowBell
	Didgeridoo
	Bit
	Banjo
	Pling
)

const (
	// InstrumentCount is the number of instrument classes in the palette.
	InstrumentCount = 16
	// PitchSpan is the number of semitones each instrument class covers: two
	// full octaves plus one note.
	PitchSpan = 25
	// MaxNoteID is the largest note identifier that can appear in a Song.
	MaxNoteID = InstrumentCount*PitchSpan - 1
)

var instrumentInfo = [InstrumentCount]struct {
	name   string
	offset int
}{
	{"harp", 54},
	{"basedrum", 0},
	{"snare", 0},
	{"hat", 0},
	{"bass", 30},
	{"flute", 66},
	{"bell", 78},
	{"guitar", 42},
	{"chime", 78},
	{"xylophone", 78},
	{"iron_xylophone", 54},
	{"cow_bell", 66},
	{"didgeridoo", 30},
	{"bit", 54},
	{"banjo", 54},
	{"pling", 54},
}

var titleCaser = cases.Title(language.English)

// Valid reports whether the instrument is part of the palette.
func (i Instrument) Valid() bool {
	return i >= 0 && i < InstrumentCount
}

// Offset returns the MIDI pitch that maps to the lowest note (pitch 0) of the
// instrument.
func (i Instrument) Offset() int {
	if !i.Valid() {
		return 0
	}
	return instrumentInfo[i].offset
}

// Contains reports whether the MIDI pitch falls inside the window of the
// instrument.
func (i Instrument) Contains(midiPitch int) bool {
	o := i.Offset()
	return i.Valid() && midiPitch >= o && midiPitch <= o+PitchSpan-1
}

// NoteID returns the note identifier for the given pitch inside the
// instrument window, i.e. pitch + i*PitchSpan.
func (i Instrument) NoteID(pitch int) int {
	return pitch + int(i)*PitchSpan
}

// String returns the lower case identifier of the instrument, e.g.
// "iron_xylophone".
func (i Instrument) String() string {
	if !i.Valid() {
		return fmt.Sprintf("instrument(%d)", int(i))
	}
	return instrumentInfo[i].name
}

// DisplayName returns a human readable name, e.g. "Iron Xylophone".
func (i Instrument) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(i.String(), "_", " "))
}

// ParseInstrument is the inverse of Instrument.String.
func ParseInstrument(name string) (Instrument, error) {
	for i, info := range instrumentInfo {
		if info.name == name {
			return Instrument(i), nil
		}
	}
	return 0, fmt.Errorf("unknown instrument %q", name)
}
