package noteblock

// Note is a single playable note event of a Song.
type Note struct {
	// Time is the absolute time of the note in milliseconds from the start of
	// the song.
	Time int64
	// ID is the note identifier: an index into the instrument/pitch palette,
	// computed as instrument*PitchSpan + pitch. Always within 0 .. MaxNoteID.
	ID int
	// Velocity is the volume of the note, 1 .. 100.
	Velocity int
}

// Instrument returns the instrument class of the note.
func (n Note) Instrument() Instrument {
	return Instrument(n.ID / PitchSpan)
}

// Pitch returns the pitch of the note inside its instrument window, 0 ..
// PitchSpan-1.
func (n Note) Pitch() int {
	return n.ID % PitchSpan
}

// MIDIPitch returns the MIDI pitch that the note represents.
func (n Note) MIDIPitch() int {
	return n.Pitch() + n.Instrument().Offset()
}
