package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/noteblock/midifile"
)

// Config tells the Loader where songs are and how large they may be.
type Config struct {
	// SongDir is the directory relative locations are resolved against.
	SongDir string `yaml:"songdir"`
	// MaxFileSize is the largest song file accepted, in bytes.
	MaxFileSize int64 `yaml:"maxfilesize"`
	// Extensions are appended to a location that does not name an existing
	// file, in order, until one matches.
	Extensions []string `yaml:"extensions,flow"`
}

func DefaultConfig() Config {
	return Config{
		SongDir:     "songs",
		MaxFileSize: midifile.DefaultMaxSize,
		Extensions:  []string{".mid", ".midi"},
	}
}

// Limit returns MaxFileSize, or midifile.DefaultMaxSize if it is not
// positive.
func (c Config) Limit() int64 {
	if c.MaxFileSize <= 0 {
		return midifile.DefaultMaxSize
	}
	return c.MaxFileSize
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %v: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %v: %w", path, err)
	}
	if cfg.MaxFileSize <= 0 {
		return cfg, fmt.Errorf("config %v: maxfilesize must be positive (was %v)", path, cfg.MaxFileSize)
	}
	return cfg, nil
}
