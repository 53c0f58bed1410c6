package convert_test

import (
	"testing"

	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
)

func TestMelodicTableCoverage(t *testing.T) {
	for p := 0; p < 128; p++ {
		candidates := convert.Candidates(uint8(p))
		missing := p == 96 || p == 97 || p >= 120
		if missing != (len(candidates) == 0) {
			t.Errorf("program %v has %v candidates", p, len(candidates))
		}
		for _, instr := range candidates {
			if !instr.Valid() {
				t.Errorf("program %v has an invalid candidate %v", p, instr)
			}
		}
	}
}

func TestResolveMelodicPicksFirstWindow(t *testing.T) {
	for p := 0; p < 128; p++ {
		candidates := convert.Candidates(uint8(p))
		for pitch := 0; pitch < 128; pitch++ {
			id, ok := convert.ResolveMelodic(uint8(p), uint8(pitch))
			var want noteblock.Instrument = -1
			for _, instr := range candidates {
				if instr.Contains(pitch) {
					want = instr
					break
				}
			}
			if ok != (want >= 0) {
				t.Fatalf("program %v pitch %v: ok was %v", p, pitch, ok)
			}
			if !ok {
				continue
			}
			n := noteblock.Note{ID: id}
			if n.Instrument() != want || n.MIDIPitch() != pitch {
				t.Fatalf("program %v pitch %v resolved to %v/%v", p, pitch, n.Instrument(), n.MIDIPitch())
			}
		}
	}
}

func TestResolvePercussion(t *testing.T) {
	for key := 0; key < 128; key++ {
		id, ok := convert.ResolvePercussion(uint8(key))
		if ok != (key >= 35 && key <= 87) {
			t.Errorf("key %v: ok was %v", key, ok)
		}
		if ok && (id < 0 || id > noteblock.MaxNoteID) {
			t.Errorf("key %v resolved to %v", key, id)
		}
	}
	if id, _ := convert.ResolvePercussion(38); id != 58 {
		t.Errorf("acoustic snare resolved to %v, expected 58", id)
	}
}
