// Package midifile reads Standard MIDI Files into the event streams that
// package convert works on.
package midifile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
)

// DefaultMaxSize is the largest file Decode and ReadFile accept by default.
const DefaultMaxSize = 10 << 20

const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusProgramChange = 0xC0
)

// Tracks is the result of reading a file: one event slice per track and the
// resolution of the ticks.
type Tracks struct {
	Events          [][]convert.Event
	TicksPerQuarter int
}

// Read parses an SMF from r. Only program changes, note ons, note offs and
// tempo changes are kept; everything else in the file is dropped. Files with
// SMPTE timing are rejected.
func Read(r io.Reader) (*Tracks, error) {
	mf, err := smf.ReadFrom(r)
	if err != nil {
		return nil, &convert.FormatError{Reason: "could not read SMF", Err: err}
	}
	ticks, ok := mf.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, &convert.FormatError{Reason: fmt.Sprintf("unsupported time format %v, only metric ticks are supported", mf.TimeFormat)}
	}
	if ticks == 0 {
		return nil, &convert.FormatError{Reason: "resolution of the file is zero ticks per quarter note"}
	}
	ret := &Tracks{
		Events:          make([][]convert.Event, len(mf.Tracks)),
		TicksPerQuarter: int(ticks),
	}
	for i, track := range mf.Tracks {
		var tick int64
		events := make([]convert.Event, 0, len(track))
		for j, ev := range track {
			tick += int64(ev.Delta)
			e, ok, err := toEvent(tick, ev.Message)
			if err != nil {
				return nil, &convert.FormatError{Reason: fmt.Sprintf("track %v, event %v", i, j), Err: err}
			}
			if ok {
				events = append(events, e)
			}
		}
		ret.Events[i] = events
	}
	return ret, nil
}

// toEvent decodes a single message. ok is false for messages that are
// dropped; err is set for tempo metas that do not carry exactly three bytes.
func toEvent(tick int64, msg smf.Message) (e convert.Event, ok bool, err error) {
	b := []byte(msg)
	if msg.Is(smf.MetaTempoMsg) {
		// FF 51 03 tt tt tt
		if len(b) != 6 || b[2] != 3 {
			return convert.Event{}, false, fmt.Errorf("malformed tempo meta % X", b)
		}
		tempo := uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5])
		return convert.TempoChange(tick, tempo), true, nil
	}
	if len(b) < 2 || b[0] >= 0xF0 {
		return convert.Event{}, false, nil
	}
	channel := b[0] & 0x0F
	switch b[0] & 0xF0 {
	case statusProgramChange:
		return convert.ProgramChange(tick, channel, b[1]&0x7F), true, nil
	case statusNoteOn:
		if len(b) < 3 {
			return convert.Event{}, false, nil
		}
		return convert.NoteOn(tick, channel, b[1]&0x7F, b[2]&0x7F), true, nil
	case statusNoteOff:
		return convert.NoteOff(tick, channel, b[1]&0x7F), true, nil
	}
	return convert.Event{}, false, nil
}

// Decode converts the bytes of an SMF into a Song. Inputs larger than maxSize
// bytes are rejected with convert.ErrTooLarge; maxSize <= 0 means
// DefaultMaxSize.
func Decode(data []byte, name string, maxSize int64, progress convert.ProgressFunc) (*noteblock.Song, error) {
	if err := checkSize(int64(len(data)), maxSize); err != nil {
		return nil, err
	}
	tracks, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	song, err := convert.Convert(tracks.Events, tracks.TicksPerQuarter, progress)
	if err != nil {
		return nil, err
	}
	song.Name = name
	return song, nil
}

// ReadFile reads and converts an SMF from disk. The song is named after the
// file.
func ReadFile(path string, maxSize int64, progress convert.ProgressFunc) (*noteblock.Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat %v: %w", path, err)
	}
	if err := checkSize(info.Size(), maxSize); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", path, err)
	}
	return Decode(data, filepath.Base(path), maxSize, progress)
}

func checkSize(size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if size > maxSize {
		return fmt.Errorf("%w: %s exceeds the limit of %s", convert.ErrTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxSize)))
	}
	return nil
}
