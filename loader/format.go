package loader

import (
	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
	"github.com/vsariola/noteblock/midifile"
)

// Format decodes one kind of song file. Decode should return an error wrapping
// a *convert.FormatError when the data is not in its format, so the Loader can
// try the next one.
type Format interface {
	Name() string
	Decode(data []byte, name string, progress convert.ProgressFunc) (*noteblock.Song, error)
}

// MIDI is the Standard MIDI File format.
type MIDI struct {
	MaxSize int64
}

func (MIDI) Name() string { return "MIDI" }

func (f MIDI) Decode(data []byte, name string, progress convert.ProgressFunc) (*noteblock.Song, error) {
	return midifile.Decode(data, name, f.MaxSize, progress)
}
