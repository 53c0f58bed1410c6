// Package convert turns timestamped MIDI events into a note block Song.
//
// The conversion is synchronous, does no I/O and keeps no state between
// calls; it can be run from any goroutine.
package convert

import (
	"fmt"
	"runtime"

	"github.com/vsariola/noteblock"
)

const (
	// ProgressInterval is how many processed events there are between two
	// calls of the ProgressFunc.
	ProgressInterval = 100
	// YieldInterval is how many processed events there are between two
	// yields of the goroutine.
	YieldInterval = 1000
)

// ProgressFunc receives the progress of a conversion. It is called from the
// goroutine running Convert and must not expect Convert to read anything it
// changes.
type ProgressFunc func(percent, processed, total int)

type (
	// mapper is the per-call state of a conversion: the programs of each
	// (track, channel) pair, the running counters and the song being built.
	mapper struct {
		programs map[channelKey]uint8
		song     *noteblock.Song
		stats    noteblock.Stats
	}

	channelKey struct {
		track   int
		channel uint8
	}
)

// Convert converts the events of all tracks into a Song. ticksPerQuarter is
// the resolution of the ticks. Each track must be in stream order, with
// non-decreasing ticks. Tracks are processed one after another and each keeps
// its own tempo clock over the shared list of tempo changes.
//
// The returned song is sorted by time and normalized (see Song.Normalize).
// progress may be nil. On error, no song is returned.
func Convert(tracks [][]Event, ticksPerQuarter int, progress ProgressFunc) (*noteblock.Song, error) {
	if err := validate(tracks, ticksPerQuarter); err != nil {
		return nil, err
	}
	tempos := collectTempos(tracks)
	// the total is what the caller passed in; readers that drop messages
	// (midifile keeps only four kinds) report progress over the kept ones
	total := 0
	for _, t := range tracks {
		total += len(t)
	}
	m := &mapper{
		programs: map[channelKey]uint8{},
		song:     &noteblock.Song{},
	}
	processed := 0
	for trackIndex, track := range tracks {
		clock := newTempoClock(tempos, ticksPerQuarter)
		for _, e := range track {
			m.handle(trackIndex, e, clock)
			processed++
			if progress != nil && processed%ProgressInterval == 0 {
				progress(processed*100/total, processed, total)
			}
			if processed%YieldInterval == 0 {
				runtime.Gosched()
			}
		}
	}
	if progress != nil {
		progress(100, total, total)
	}
	m.song.Stats = m.stats
	m.song.Sort()
	m.song.Normalize()
	return m.song, nil
}

func validate(tracks [][]Event, ticksPerQuarter int) error {
	if ticksPerQuarter <= 0 {
		return formatErrorf("ticks per quarter note must be positive (was %v)", ticksPerQuarter)
	}
	for i, track := range tracks {
		var prev int64
		for j, e := range track {
			if err := e.validate(); err != nil {
				return &FormatError{Reason: fmt.Sprintf("track %v, event %v", i, j), Err: err}
			}
			if e.Tick < prev {
				return formatErrorf("track %v, event %v: tick %v is before the previous tick %v", i, j, e.Tick, prev)
			}
			prev = e.Tick
		}
	}
	return nil
}

func (m *mapper) handle(track int, e Event, clock *tempoClock) {
	switch e.Kind {
	case ProgramChangeEvent:
		clock.catchUp(e.Tick)
		m.programs[channelKey{track, e.Channel}] = e.Program
	case NoteOnEvent:
		clock.catchUp(e.Tick)
		m.noteOn(track, e, clock)
	case NoteOffEvent:
		m.extend(clock.Millis(e.Tick))
	case TempoChangeEvent:
		// already in the global tempo list; the clock applies it
		clock.catchUp(e.Tick)
	}
}

func (m *mapper) noteOn(track int, e Event, clock *tempoClock) {
	m.stats.Total++
	if e.Velocity == 0 { // a note on with zero velocity is a note off
		m.stats.Skipped++
		return
	}
	velocity := int(e.Velocity) * 100 / 127
	if velocity == 0 {
		m.stats.Skipped++
		return
	}
	time := clock.Millis(e.Tick)
	var id int
	var ok bool
	if e.Channel == PercussionChannel {
		id, ok = ResolvePercussion(e.Key)
	} else {
		id, ok = ResolveMelodic(m.programs[channelKey{track, e.Channel}], e.Key)
	}
	if ok {
		m.song.Add(noteblock.Note{Time: time, ID: id, Velocity: velocity})
		m.stats.Converted++
	} else {
		m.stats.Skipped++
	}
	m.extend(time)
}

// extend grows the song length to cover time.
func (m *mapper) extend(time int64) {
	if time > m.song.Length {
		m.song.Length = time
	}
}
