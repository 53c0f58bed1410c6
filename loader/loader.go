// Package loader finds song files, reads them and tries the known formats in
// order until one of them decodes the song. Loading runs in its own goroutine
// and reports its progress as an overall percentage and a stage description.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
)

var (
	ErrNotFound      = errors.New("could not find song")
	ErrUnknownFormat = errors.New("invalid song format")
	ErrRemote        = errors.New("downloading songs is not supported")
)

// Failed is the progress reported when loading fails.
const Failed = -1

// formatSpans are the progress ranges given to the first formats tried; the
// first one is where most of the time goes when loading MIDI files.
var formatSpans = [][2]int{{25, 70}, {70, 85}, {85, 95}}

type (
	// Listener is notified about loading progress. It is called from the
	// loading goroutine and only when the percentage changes.
	Listener func(percent int, stage string)

	Loader struct {
		Config   Config
		Formats  []Format
		Listener Listener
	}

	// Job is a song being loaded.
	Job struct {
		ctx      context.Context
		listener Listener
		done     chan struct{}

		mu           sync.Mutex
		percent      int
		stage        string
		lastReported int

		song *noteblock.Song
		err  error
	}
)

// New returns a Loader that knows the MIDI format.
func New(cfg Config) *Loader {
	return &Loader{
		Config:  cfg,
		Formats: []Format{MIDI{MaxSize: cfg.Limit()}},
	}
}

// Resolve finds the file for a location: the location itself inside SongDir,
// or the location with one of the configured extensions. Locations may not
// point outside SongDir.
func (l *Loader) Resolve(location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return "", fmt.Errorf("%w: %v", ErrRemote, location)
	}
	if !filepath.IsLocal(location) {
		return "", fmt.Errorf("%w: %v is outside the song directory", ErrNotFound, location)
	}
	candidates := append([]string{""}, l.Config.Extensions...)
	for _, ext := range candidates {
		p := filepath.Join(l.Config.SongDir, location+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %v", ErrNotFound, location)
}

// Load loads the song at location and waits for the result.
func (l *Loader) Load(ctx context.Context, location string) (*noteblock.Song, error) {
	return l.Start(ctx, location).Wait()
}

// Start begins loading the song at location in a new goroutine.
func (l *Loader) Start(ctx context.Context, location string) *Job {
	j := l.newJob(ctx)
	go func() {
		defer close(j.done)
		j.song, j.err = l.run(j, location)
		if j.err != nil {
			j.update(Failed, "loading failed: "+j.err.Error())
		}
	}()
	return j
}

// StartBytes is like Start, but decodes data that is already in memory.
func (l *Loader) StartBytes(ctx context.Context, data []byte, name string) *Job {
	j := l.newJob(ctx)
	go func() {
		defer close(j.done)
		j.update(20, "file loaded")
		j.song, j.err = l.decode(j, data, name)
		if j.err != nil {
			j.update(Failed, "loading failed: "+j.err.Error())
		}
	}()
	return j
}

func (l *Loader) newJob(ctx context.Context) *Job {
	return &Job{ctx: ctx, listener: l.Listener, done: make(chan struct{}), lastReported: Failed - 1}
}

func (l *Loader) run(j *Job, location string) (*noteblock.Song, error) {
	logger := log.FromContext(j.ctx)
	j.update(0, "loading file...")
	path, err := l.Resolve(location)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat %v: %w", path, err)
	}
	if limit := l.Config.Limit(); info.Size() > limit {
		return nil, fmt.Errorf("%w: %v is %s, the limit is %s", convert.ErrTooLarge, path,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(limit)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", path, err)
	}
	logger.Debug("read song file", "path", path, "size", humanize.IBytes(uint64(len(data))))
	j.update(20, "file loaded")
	return l.decode(j, data, filepath.Base(path))
}

func (l *Loader) decode(j *Job, data []byte, name string) (*noteblock.Song, error) {
	logger := log.FromContext(j.ctx)
	for i, f := range l.Formats {
		if err := j.ctx.Err(); err != nil {
			return nil, err
		}
		start, end := 95, 95
		if i < len(formatSpans) {
			start, end = formatSpans[i][0], formatSpans[i][1]
		}
		j.update(start, fmt.Sprintf("trying %v format...", f.Name()))
		parsing := fmt.Sprintf("parsing %v...", f.Name())
		song, err := f.Decode(data, name, func(percent, processed, total int) {
			j.update(start+percent*(end-start)/100, parsing)
		})
		if errors.Is(err, convert.ErrTooLarge) {
			return nil, err
		}
		if err != nil {
			logger.Debug("format did not match", "format", f.Name(), "name", name, "err", err)
			j.update(start+5, fmt.Sprintf("not a %v file", f.Name()))
			continue
		}
		logger.Info("song loaded", "name", name, "format", f.Name(), "notes", len(song.Notes), "stats", song.Stats)
		j.update(end, fmt.Sprintf("%v parsed", f.Name()))
		if err := j.ctx.Err(); err != nil {
			return nil, err
		}
		j.update(100, song.Stats.String())
		return song, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, name)
}

func (j *Job) update(percent int, stage string) {
	j.mu.Lock()
	j.stage = stage
	j.percent = percent
	notify := j.listener != nil && percent != j.lastReported
	if notify {
		j.lastReported = percent
	}
	j.mu.Unlock()
	if notify {
		j.listener(percent, stage)
	}
}

// Progress returns the current percentage and stage description. It is safe
// to call from any goroutine.
func (j *Job) Progress() (percent int, stage string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.percent, j.stage
}

// Done is closed when the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or its context is cancelled. A cancelled
// job keeps running in the background until the current conversion returns,
// but its result is dropped.
func (j *Job) Wait() (*noteblock.Song, error) {
	select {
	case <-j.done:
		return j.song, j.err
	case <-j.ctx.Done():
		return nil, j.ctx.Err()
	}
}
