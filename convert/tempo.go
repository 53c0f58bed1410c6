package convert

import "sort"

type (
	// TempoEvent is a tempo change on the global timeline.
	TempoEvent struct {
		Tick  int64
		Tempo uint32 // microseconds per quarter note
	}

	// tempoClock converts the ticks of one track into microseconds. Every
	// track gets its own clock, and each clock walks the same global list of
	// tempo events, so tempo changes found in one track apply to all tracks.
	tempoClock struct {
		tempos          []TempoEvent
		ticksPerQuarter int64
		microTime       int64
		tempo           int64
		prevTick        int64
		cursor          int
	}
)

// collectTempos gathers the tempo changes of all tracks and sorts them by
// tick. Changes on the same tick keep the order they were found in.
func collectTempos(tracks [][]Event) []TempoEvent {
	var ret []TempoEvent
	for _, track := range tracks {
		for _, e := range track {
			if e.Kind == TempoChangeEvent {
				ret = append(ret, TempoEvent{Tick: e.Tick, Tempo: e.Tempo})
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Tick < ret[j].Tick })
	return ret
}

func newTempoClock(tempos []TempoEvent, ticksPerQuarter int) *tempoClock {
	return &tempoClock{
		tempos:          tempos,
		ticksPerQuarter: int64(ticksPerQuarter),
		tempo:           DefaultTempo,
	}
}

// catchUp applies every tempo change strictly before tick. The time between
// the previous position and each change is accumulated with the tempo that was
// active before the change. Zero tempos are ignored.
func (c *tempoClock) catchUp(tick int64) {
	for c.cursor < len(c.tempos) && c.tempos[c.cursor].Tick < tick {
		t := c.tempos[c.cursor]
		c.advanceTo(t.Tick)
		if t.Tempo != 0 {
			c.tempo = int64(t.Tempo)
		}
		c.cursor++
	}
}

// advanceTo moves the clock to tick using the current tempo. The division is
// done before the multiplication: this truncates the microseconds per tick and
// the error accumulates, which is the expected result.
func (c *tempoClock) advanceTo(tick int64) {
	c.microTime += (c.tempo / c.ticksPerQuarter) * (tick - c.prevTick)
	c.prevTick = tick
}

// Micros returns the absolute time of tick in microseconds. Ticks must be
// given in non-decreasing order.
func (c *tempoClock) Micros(tick int64) int64 {
	c.catchUp(tick)
	c.advanceTo(tick)
	return c.microTime
}

// Millis is Micros truncated to milliseconds.
func (c *tempoClock) Millis(tick int64) int64 {
	return c.Micros(tick) / 1000
}
