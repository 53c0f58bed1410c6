package convert

import "fmt"

type (
	// Event is a single event of a track: a tick position and one of four
	// kinds of payload. Only the fields relevant for the Kind are used.
	Event struct {
		Tick     int64
		Kind     EventKind
		Channel  uint8
		Key      uint8  // NoteOn, NoteOff
		Velocity uint8  // NoteOn
		Program  uint8  // ProgramChange
		Tempo    uint32 // TempoChange, in microseconds per quarter note
	}

	// EventKind tells which payload an Event carries.
	EventKind int
)

const (
	ProgramChangeEvent EventKind = iota
	NoteOnEvent
	NoteOffEvent
	TempoChangeEvent
)

// PercussionChannel is the 0-indexed MIDI channel reserved for drums.
const PercussionChannel = 9

// DefaultTempo is the tempo before any tempo change, in microseconds per
// quarter note (120 BPM).
const DefaultTempo = 500000

func ProgramChange(tick int64, channel, program uint8) Event {
	return Event{Tick: tick, Kind: ProgramChangeEvent, Channel: channel, Program: program}
}

func NoteOn(tick int64, channel, key, velocity uint8) Event {
	return Event{Tick: tick, Kind: NoteOnEvent, Channel: channel, Key: key, Velocity: velocity}
}

func NoteOff(tick int64, channel, key uint8) Event {
	return Event{Tick: tick, Kind: NoteOffEvent, Channel: channel, Key: key}
}

func TempoChange(tick int64, microsecondsPerQuarter uint32) Event {
	return Event{Tick: tick, Kind: TempoChangeEvent, Tempo: microsecondsPerQuarter}
}

func (k EventKind) String() string {
	switch k {
	case ProgramChangeEvent:
		return "program change"
	case NoteOnEvent:
		return "note on"
	case NoteOffEvent:
		return "note off"
	case TempoChangeEvent:
		return "tempo change"
	}
	return fmt.Sprintf("event kind %d", int(k))
}

// validate checks that the payload fits the 7-bit MIDI data ranges.
func (e Event) validate() error {
	switch e.Kind {
	case ProgramChangeEvent:
		if e.Channel > 15 || e.Program > 127 {
			return fmt.Errorf("program change out of range (channel %v, program %v)", e.Channel, e.Program)
		}
	case NoteOnEvent:
		if e.Channel > 15 || e.Key > 127 || e.Velocity > 127 {
			return fmt.Errorf("note on out of range (channel %v, key %v, velocity %v)", e.Channel, e.Key, e.Velocity)
		}
	case NoteOffEvent:
		if e.Channel > 15 || e.Key > 127 {
			return fmt.Errorf("note off out of range (channel %v, key %v)", e.Channel, e.Key)
		}
	case TempoChangeEvent:
		if e.Tempo > 0xFFFFFF {
			return fmt.Errorf("tempo %v does not fit in 24 bits", e.Tempo)
		}
	default:
		return fmt.Errorf("unknown %v", e.Kind)
	}
	if e.Tick < 0 {
		return fmt.Errorf("negative tick %v", e.Tick)
	}
	return nil
}
