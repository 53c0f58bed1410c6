package convert

import "github.com/vsariola/noteblock"

type percussionEntry struct {
	instrument noteblock.Instrument
	pitch      int
}

// melodicTable lists, for each General MIDI program, the instrument classes
// that may play it, in order of preference. Programs without a plausible
// instrument are left out and their notes are skipped.
var melodicTable = map[uint8][]noteblock.Instrument{
	// Piano
	0: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // Acoustic Grand Piano
	1: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // Bright Acoustic Piano
	2: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Electric Grand Piano
	3: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // Honky-tonk Piano
	4: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Electric Piano 1
	5: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Electric Piano 2
	6: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // Harpsichord
	7: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // Clavinet

	// Chromatic percussion
	8:  {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Celesta
	9:  {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Glockenspiel
	10: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Music Box
	11: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Vibraphone
	12: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Marimba
	13: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Xylophone
	14: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Tubular Bells
	15: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Dulcimer

	// Organ
	16: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Drawbar Organ
	17: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Percussive Organ
	18: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Rock Organ
	19: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Church Organ
	20: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Reed Organ
	21: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Accordion
	22: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Harmonica
	23: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Tango Accordion

	// Guitar
	24: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Acoustic Guitar (nylon)
	25: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Acoustic Guitar (steel)
	26: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Electric Guitar (jazz)
	27: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Electric Guitar (clean)
	28: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Electric Guitar (muted)
	29: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone},         // Overdriven Guitar
	30: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone},         // Distortion Guitar
	31: {noteblock.Guitar, noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Guitar Harmonics

	// Bass
	32: {noteblock.Bass, noteblock.Harp, noteblock.Bell},           // Acoustic Bass
	33: {noteblock.Bass, noteblock.Harp, noteblock.Bell},           // Electric Bass (finger)
	34: {noteblock.Bass, noteblock.Harp, noteblock.Bell},           // Electric Bass (pick)
	35: {noteblock.Bass, noteblock.Harp, noteblock.Bell},           // Fretless Bass
	36: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Slap Bass 1
	37: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Slap Bass 2
	38: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Synth Bass 1
	39: {noteblock.Didgeridoo, noteblock.Bit, noteblock.Xylophone}, // Synth Bass 2

	// Strings
	40: {noteblock.Flute, noteblock.Guitar, noteblock.Bass, noteblock.Bell}, // Violin
	41: {noteblock.Flute, noteblock.Guitar, noteblock.Bass, noteblock.Bell}, // Viola
	42: {noteblock.Flute, noteblock.Guitar, noteblock.Bass, noteblock.Bell}, // Cello
	43: {noteblock.Flute, noteblock.Guitar, noteblock.Bass, noteblock.Bell}, // Contrabass
	44: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell},               // Tremolo Strings
	45: {noteblock.Harp, noteblock.Bass, noteblock.Bell},                    // Pizzicato Strings
	46: {noteblock.Harp, noteblock.Bass, noteblock.Chime},                   // Orchestral Harp
	47: {noteblock.Harp, noteblock.Bass, noteblock.Bell},                    // Timpani

	// Ensemble
	48: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // String Ensemble 1
	49: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // String Ensemble 2
	50: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Synth Strings 1
	51: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Synth Strings 2
	52: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Choir Aahs
	53: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Voice Oohs
	54: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Synth Choir
	55: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Orchestra Hit

	// Brass
	56: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Trumpet
	57: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Trombone
	58: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Tuba
	59: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Muted Trumpet
	60: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // French Horn
	61: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Brass Section
	62: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Synth Brass 1
	63: {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // Synth Brass 2

	// Reed
	64: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Soprano Sax
	65: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Alto Sax
	66: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Tenor Sax
	67: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Baritone Sax
	68: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Oboe
	69: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // English Horn
	70: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Bassoon
	71: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Clarinet

	// Pipe
	72: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Piccolo
	73: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Flute
	74: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Recorder
	75: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Pan Flute
	76: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Blown Bottle
	77: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Shakuhachi
	78: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Whistle
	79: {noteblock.Flute, noteblock.Didgeridoo, noteblock.IronXylophone, noteblock.Bell}, // Ocarina

	// Synth lead
	80: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 1 (square)
	81: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 2 (sawtooth)
	82: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 3 (calliope)
	83: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 4 (chiff)
	84: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 5 (charang)
	85: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 6 (voice)
	86: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 7 (fifths)
	87: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Lead 8 (bass + lead)

	// Synth pad
	88: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 1 (new age)
	89: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 2 (warm)
	90: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 3 (polysynth)
	91: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 4 (choir)
	92: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 5 (bowed)
	93: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 6 (metallic)
	94: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 7 (halo)
	95: {noteblock.Harp, noteblock.Bass, noteblock.Bell}, // Pad 8 (sweep)

	// Synth effects, rain and soundtrack have no mapping
	98:  {noteblock.Bit, noteblock.Didgeridoo, noteblock.Bell}, // FX 3 (crystal)
	99:  {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // FX 4 (atmosphere)
	100: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // FX 5 (brightness)
	101: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // FX 6 (goblins)
	102: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // FX 7 (echoes)
	103: {noteblock.Harp, noteblock.Bass, noteblock.Bell},      // FX 8 (sci-fi)

	// Ethnic
	104: {noteblock.Banjo, noteblock.Bass, noteblock.Bell},      // Sitar
	105: {noteblock.Banjo, noteblock.Bass, noteblock.Bell},      // Banjo
	106: {noteblock.Banjo, noteblock.Bass, noteblock.Bell},      // Shamisen
	107: {noteblock.Banjo, noteblock.Bass, noteblock.Bell},      // Koto
	108: {noteblock.Banjo, noteblock.Bass, noteblock.Bell},      // Kalimba
	109: {noteblock.Harp, noteblock.Didgeridoo, noteblock.Bell}, // Bagpipe
	110: {noteblock.Harp, noteblock.Didgeridoo, noteblock.Bell}, // Fiddle
	111: {noteblock.Harp, noteblock.Didgeridoo, noteblock.Bell}, // Shanai

	// Percussive
	112: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Tinkle Bell
	113: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Agogo
	114: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Steel Drums
	115: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Woodblock
	116: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Taiko Drum
	117: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Melodic Tom
	118: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Synth Drum
	119: {noteblock.IronXylophone, noteblock.Bass, noteblock.Xylophone}, // Reverse Cymbal
}

// percussionTable maps General MIDI percussion keys to a fixed note.
var percussionTable = map[uint8]percussionEntry{
	35: {noteblock.BaseDrum, 10}, // Acoustic Bass Drum
	36: {noteblock.BaseDrum, 6},  // Bass Drum 1
	37: {noteblock.Hat, 6},       // Side Stick
	38: {noteblock.Snare, 8},     // Acoustic Snare
	39: {noteblock.Hat, 6},       // Hand Clap
	40: {noteblock.Snare, 4},     // Electric Snare
	41: {noteblock.BaseDrum, 6},  // Low Floor Tom
	42: {noteblock.Snare, 22},    // Closed Hi-Hat
	43: {noteblock.BaseDrum, 13}, // High Floor Tom
	44: {noteblock.Snare, 22},    // Pedal Hi-Hat
	45: {noteblock.BaseDrum, 15}, // Low Tom
	46: {noteblock.Snare, 18},    // Open Hi-Hat
	47: {noteblock.BaseDrum, 20}, // Low-Mid Tom
	48: {noteblock.BaseDrum, 23}, // Hi-Mid Tom
	49: {noteblock.Snare, 17},    // Crash Cymbal 1
	50: {noteblock.BaseDrum, 23}, // High Tom
	51: {noteblock.Snare, 24},    // Ride Cymbal 1
	52: {noteblock.Snare, 8},     // Chinese Cymbal
	53: {noteblock.Snare, 13},    // Ride Bell
	54: {noteblock.Hat, 18},      // Tambourine
	55: {noteblock.Snare, 18},    // Splash Cymbal
	56: {noteblock.Hat, 1},       // Cowbell
	57: {noteblock.Snare, 13},    // Crash Cymbal 2
	58: {noteblock.Hat, 2},       // Vibraslap
	59: {noteblock.Snare, 13},    // Ride Cymbal 2
	60: {noteblock.Hat, 9},       // Hi Bongo
	61: {noteblock.Hat, 2},       // Low Bongo
	62: {noteblock.Hat, 8},       // Mute Hi Conga
	63: {noteblock.BaseDrum, 22}, // Open Hi Conga
	64: {noteblock.BaseDrum, 15}, // Low Conga
	65: {noteblock.Snare, 13},    // High Timbale
	66: {noteblock.Snare, 8},     // Low Timbale
	67: {noteblock.Hat, 8},       // High Agogo
	68: {noteblock.Hat, 3},       // Low Agogo
	69: {noteblock.Hat, 20},      // Cabasa
	70: {noteblock.Hat, 23},      // Maracas
	71: {noteblock.Hat, 24},      // Short Whistle
	72: {noteblock.Hat, 24},      // Long Whistle
	73: {noteblock.Hat, 17},      // Short Guiro
	74: {noteblock.Hat, 11},      // Long Guiro
	75: {noteblock.Hat, 18},      // Claves
	76: {noteblock.Hat, 9},       // Hi Wood Block
	77: {noteblock.Hat, 5},       // Low Wood Block
	78: {noteblock.Hat, 22},      // Mute Cuica
	79: {noteblock.Snare, 19},    // Open Cuica
	80: {noteblock.Hat, 17},      // Mute Triangle
	81: {noteblock.Hat, 22},      // Open Triangle
	82: {noteblock.Snare, 22},    // Shaker
	83: {noteblock.Chime, 24},    // Jingle Bell
	84: {noteblock.Chime, 24},    // Bell Tree
	85: {noteblock.Hat, 21},      // Castanets
	86: {noteblock.BaseDrum, 14}, // Mute Surdo
	87: {noteblock.BaseDrum, 7},  // Open Surdo
}

// Candidates returns the instrument classes that may play the given program,
// in order of preference. The returned slice must not be modified.
func Candidates(program uint8) []noteblock.Instrument {
	return melodicTable[program]
}

// ResolveMelodic maps a MIDI pitch played with the given program to a note
// identifier. The first candidate instrument whose window contains the pitch
// wins. ok is false if no candidate can play the pitch.
func ResolveMelodic(program, pitch uint8) (id int, ok bool) {
	for _, instr := range melodicTable[program] {
		if instr.Contains(int(pitch)) {
			return instr.NoteID(int(pitch) - instr.Offset()), true
		}
	}
	return 0, false
}

// ResolvePercussion maps a MIDI percussion key to a note identifier.
func ResolvePercussion(key uint8) (id int, ok bool) {
	e, ok := percussionTable[key]
	if !ok {
		return 0, false
	}
	return e.instrument.NoteID(e.pitch), true
}
