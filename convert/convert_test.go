package convert_test

import (
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
)

type (
	fixture struct {
		TicksPerQuarter int              `yaml:"ticksperquarter"`
		Tracks          [][]fixtureEvent `yaml:"tracks"`
		Expected        struct {
			Length int64           `yaml:"length"`
			Notes  [][]int64       `yaml:"notes"`
			Stats  noteblock.Stats `yaml:"stats"`
		} `yaml:"expected"`
	}

	fixtureEvent struct {
		Tick     int64  `yaml:"tick"`
		Kind     string `yaml:"kind"`
		Channel  uint8  `yaml:"channel"`
		Key      uint8  `yaml:"key"`
		Velocity uint8  `yaml:"velocity"`
		Program  uint8  `yaml:"program"`
		Tempo    uint32 `yaml:"tempo"`
	}
)

func (f fixtureEvent) event(t *testing.T) convert.Event {
	switch f.Kind {
	case "program":
		return convert.ProgramChange(f.Tick, f.Channel, f.Program)
	case "noteon":
		return convert.NoteOn(f.Tick, f.Channel, f.Key, f.Velocity)
	case "noteoff":
		return convert.NoteOff(f.Tick, f.Channel, f.Key)
	case "tempo":
		return convert.TempoChange(f.Tick, f.Tempo)
	}
	t.Fatalf("unknown event kind in fixture: %v", f.Kind)
	return convert.Event{}
}

func TestFixtures(t *testing.T) {
	_, myname, _, _ := runtime.Caller(0)
	files, err := filepath.Glob(path.Join(path.Dir(myname), "testdata", "*.yml"))
	if err != nil {
		t.Fatalf("cannot glob files in the test directory: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, filename := range files {
		basename := filepath.Base(filename)
		testname := strings.TrimSuffix(basename, path.Ext(basename))
		t.Run(testname, func(t *testing.T) {
			data, err := os.ReadFile(filename)
			if err != nil {
				t.Fatalf("cannot read the fixture: %v", err)
			}
			var f fixture
			if err := yaml.Unmarshal(data, &f); err != nil {
				t.Fatalf("could not parse the .yml file: %v", err)
			}
			var tracks [][]convert.Event
			for _, ft := range f.Tracks {
				var track []convert.Event
				for _, fe := range ft {
					track = append(track, fe.event(t))
				}
				tracks = append(tracks, track)
			}
			song, err := convert.Convert(tracks, f.TicksPerQuarter, nil)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			var notes [][]int64
			for _, n := range song.Notes {
				notes = append(notes, []int64{n.Time, int64(n.ID), int64(n.Velocity)})
			}
			if !reflect.DeepEqual(notes, f.Expected.Notes) {
				t.Errorf("notes were %v, expected %v", notes, f.Expected.Notes)
			}
			if song.Length != f.Expected.Length {
				t.Errorf("length was %v, expected %v", song.Length, f.Expected.Length)
			}
			if song.Stats != f.Expected.Stats {
				t.Errorf("stats were %+v, expected %+v", song.Stats, f.Expected.Stats)
			}
		})
	}
}

func TestScenarioA(t *testing.T) {
	tracks := [][]convert.Event{{
		convert.TempoChange(0, 500000),
		convert.ProgramChange(0, 0, 0),
		convert.NoteOn(480, 0, 60, 100),
		convert.NoteOff(960, 0, 60),
	}}
	song, err := convert.Convert(tracks, 480, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := []noteblock.Note{{Time: 499, ID: 6, Velocity: 78}}
	if !reflect.DeepEqual(song.Notes, want) {
		t.Fatalf("notes were %v, expected %v", song.Notes, want)
	}
	if song.Notes[0].Instrument() != noteblock.Harp {
		t.Fatalf("note played by %v, expected harp", song.Notes[0].Instrument())
	}
}

func TestTooQuietNoteIsSkipped(t *testing.T) {
	tracks := [][]convert.Event{{
		convert.ProgramChange(0, 0, 0),
		convert.NoteOn(500, 0, 60, 1),
	}}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(song.Notes) != 0 {
		t.Fatalf("expected no notes, got %v", song.Notes)
	}
	if want := (noteblock.Stats{Total: 1, Converted: 0, Skipped: 1}); song.Stats != want {
		t.Fatalf("stats were %+v, expected %+v", song.Stats, want)
	}
	if song.Length != 0 {
		t.Fatalf("length was %v, expected 0", song.Length)
	}
}

func TestZeroVelocityDoesNotExtendSong(t *testing.T) {
	tracks := [][]convert.Event{{
		convert.NoteOn(500, 0, 60, 100),
		convert.NoteOn(9000, 0, 60, 0),
	}}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	// 500 plus the 500 ms missing from the lead-in
	if song.Length != 1000 {
		t.Fatalf("length was %v, expected 1000", song.Length)
	}
	if song.Stats.Skipped != 1 {
		t.Fatalf("expected the silent note to be skipped, stats were %+v", song.Stats)
	}
}

func TestPercussionIgnoresProgram(t *testing.T) {
	tracks := [][]convert.Event{{
		convert.ProgramChange(0, convert.PercussionChannel, 40),
		convert.NoteOn(1000, convert.PercussionChannel, 38, 127),
	}}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(song.Notes) != 1 || song.Notes[0].ID != 58 {
		t.Fatalf("expected a single note 58, got %v", song.Notes)
	}
	if song.Notes[0].Instrument() != noteblock.Snare {
		t.Fatalf("note played by %v, expected snare", song.Notes[0].Instrument())
	}
}

func TestProgramsArePerTrack(t *testing.T) {
	tracks := [][]convert.Event{
		{
			convert.ProgramChange(0, 0, 24), // guitar
			convert.NoteOn(1000, 0, 60, 127),
		},
		{
			convert.NoteOn(1000, 0, 60, 127),
		},
	}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	var ids []int
	for _, n := range song.Notes {
		ids = append(ids, n.ID)
	}
	want := []int{noteblock.Guitar.NoteID(60 - 42), noteblock.Harp.NoteID(60 - 54)}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids were %v, expected %v", ids, want)
	}
}

func TestEqualTimesKeepTrackOrder(t *testing.T) {
	tracks := [][]convert.Event{
		{convert.NoteOn(1000, 0, 61, 127)},
		{convert.NoteOn(500, 0, 62, 127), convert.NoteOn(1000, 0, 63, 127)},
	}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	var ids []int
	for _, n := range song.Notes {
		ids = append(ids, n.ID)
	}
	if want := []int{8, 7, 9}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids were %v, expected %v", ids, want)
	}
}

func TestLateSongIsShifted(t *testing.T) {
	tracks := [][]convert.Event{{
		convert.NoteOn(5000, 0, 60, 127),
		convert.NoteOff(10000, 0, 60),
	}}
	song, err := convert.Convert(tracks, 500, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if song.Notes[0].Time != noteblock.LeadIn {
		t.Errorf("first note at %v, expected %v", song.Notes[0].Time, noteblock.LeadIn)
	}
	if song.Length != 6000 {
		t.Errorf("length was %v, expected 6000", song.Length)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, tracks := range [][][]convert.Event{nil, {}, {{}, {}}} {
		song, err := convert.Convert(tracks, 96, nil)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if len(song.Notes) != 0 || song.Length != 0 || song.Stats != (noteblock.Stats{}) {
			t.Fatalf("expected an empty song, got %+v", song)
		}
	}
}

type progressCall struct{ percent, processed, total int }

func TestProgress(t *testing.T) {
	track := make([]convert.Event, 250)
	for i := range track {
		track[i] = convert.NoteOn(int64(i*10), 0, 60, 100)
	}
	var calls []progressCall
	_, err := convert.Convert([][]convert.Event{track}, 96, func(percent, processed, total int) {
		calls = append(calls, progressCall{percent, processed, total})
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := []progressCall{{40, 100, 250}, {80, 200, 250}, {100, 250, 250}}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("progress calls were %v, expected %v", calls, want)
	}
}

func TestProgressOnEmptyInput(t *testing.T) {
	var calls []progressCall
	_, err := convert.Convert(nil, 96, func(percent, processed, total int) {
		calls = append(calls, progressCall{percent, processed, total})
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if want := []progressCall{{100, 0, 0}}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("progress calls were %v, expected %v", calls, want)
	}
}

func randomTracks(r *rand.Rand) [][]convert.Event {
	tracks := make([][]convert.Event, 1+r.Intn(4))
	for i := range tracks {
		var tick int64
		n := 1 + r.Intn(3000)
		for j := 0; j < n; j++ {
			tick += int64(r.Intn(200))
			ch := uint8(r.Intn(16))
			switch r.Intn(8) {
			case 0:
				tracks[i] = append(tracks[i], convert.ProgramChange(tick, ch, uint8(r.Intn(128))))
			case 1:
				tracks[i] = append(tracks[i], convert.TempoChange(tick, uint32(r.Intn(2000000))))
			case 2, 3:
				tracks[i] = append(tracks[i], convert.NoteOff(tick, ch, uint8(r.Intn(128))))
			default:
				tracks[i] = append(tracks[i], convert.NoteOn(tick, ch, uint8(r.Intn(128)), uint8(r.Intn(128))))
			}
		}
	}
	return tracks
}

func TestRandomSongInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		tracks := randomTracks(r)
		tpq := 24 + r.Intn(960)
		song, err := convert.Convert(tracks, tpq, nil)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if song.Stats.Total != song.Stats.Converted+song.Stats.Skipped {
			t.Fatalf("stats do not add up: %+v", song.Stats)
		}
		if song.Stats.Converted != len(song.Notes) {
			t.Fatalf("%v notes converted, but the song has %v", song.Stats.Converted, len(song.Notes))
		}
		for j, n := range song.Notes {
			if n.Velocity < 1 || n.Velocity > 100 {
				t.Fatalf("note %v has velocity %v", j, n.Velocity)
			}
			if n.ID < 0 || n.ID > noteblock.MaxNoteID {
				t.Fatalf("note %v has id %v", j, n.ID)
			}
			if j > 0 && n.Time < song.Notes[j-1].Time {
				t.Fatalf("note %v is before the previous note", j)
			}
		}
		again, err := convert.Convert(tracks, tpq, func(int, int, int) {})
		if err != nil {
			t.Fatalf("second Convert failed: %v", err)
		}
		if !reflect.DeepEqual(song, again) {
			t.Fatalf("converting the same input twice gave different songs")
		}
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		tracks [][]convert.Event
		tpq    int
	}{
		{"zero resolution", [][]convert.Event{{convert.NoteOn(0, 0, 60, 100)}}, 0},
		{"negative resolution", nil, -96},
		{"channel out of range", [][]convert.Event{{convert.NoteOn(0, 16, 60, 100)}}, 96},
		{"key out of range", [][]convert.Event{{convert.NoteOff(0, 0, 128)}}, 96},
		{"velocity out of range", [][]convert.Event{{convert.NoteOn(0, 0, 60, 200)}}, 96},
		{"program out of range", [][]convert.Event{{convert.ProgramChange(0, 0, 128)}}, 96},
		{"tempo out of range", [][]convert.Event{{convert.TempoChange(0, 1 << 24)}}, 96},
		{"unknown kind", [][]convert.Event{{{Kind: convert.EventKind(42)}}}, 96},
		{"negative tick", [][]convert.Event{{convert.NoteOn(-1, 0, 60, 100)}}, 96},
		{"decreasing ticks", [][]convert.Event{{convert.NoteOn(100, 0, 60, 100), convert.NoteOn(50, 0, 60, 100)}}, 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song, err := convert.Convert(tt.tracks, tt.tpq, nil)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !convert.IsFormatError(err) {
				t.Fatalf("expected a FormatError, got %v", err)
			}
			if song != nil {
				t.Fatalf("expected no song on error")
			}
		})
	}
}
