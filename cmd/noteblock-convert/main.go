package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/noteblock"
	"github.com/vsariola/noteblock/convert"
	"github.com/vsariola/noteblock/loader"
	"github.com/vsariola/noteblock/version"
)

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	jsonOut := flag.Bool("j", false, "Output the converted song as .json file instead of .yml.")
	noOut := flag.Bool("x", false, "Do not output the converted songs, only print the report.")
	outPath := flag.String("o", "", "Directory where to write the converted songs. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original song file is.")
	configPath := flag.String("c", "", "YAML config file with the song directory and the size limit. Arguments that are not existing files are looked up in the song directory.")
	reportPath := flag.String("t", "", "Print the report using this text/template file instead of the built-in one.")
	parallel := flag.Int("p", runtime.NumCPU(), "Number of songs converted in parallel.")
	debug := flag.Bool("d", false, "Print debug logging.")
	quiet := flag.Bool("q", false, "Print only errors; no progress or reports.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "noteblock-convert"})
	switch {
	case *debug:
		logger.SetLevel(log.DebugLevel)
	case *quiet:
		logger.SetLevel(log.ErrorLevel)
	}
	ctx := log.WithContext(context.Background(), logger)
	cfg := loader.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loader.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("could not load config", "err", err)
		}
	}
	report, err := newReport(*reportPath)
	if err != nil {
		logger.Fatal("could not create report template", "err", err)
	}
	var printMu sync.Mutex
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			printMu.Lock()
			defer printMu.Unlock()
			fmt.Print(string(contents))
			return nil
		}
		dir, name := filepath.Split(filename)
		if *outPath != "" {
			dir = *outPath
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		original, err := os.ReadFile(f)
		if err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if dir != "" {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	process := func(param string) error {
		l := loader.New(cfg)
		if !*quiet {
			sometimes := rate.Sometimes{Interval: 200 * time.Millisecond}
			l.Listener = func(percent int, stage string) {
				if percent == 100 || percent == loader.Failed {
					return
				}
				sometimes.Do(func() { logger.Info(stage, "song", param, "progress", fmt.Sprintf("%d%%", percent)) })
			}
		}
		var job *loader.Job
		filename := param
		var size int64
		if info, err := os.Stat(param); err == nil {
			if info.Size() > cfg.Limit() {
				return fmt.Errorf("%w: %v is %s", convert.ErrTooLarge, param, humanize.IBytes(uint64(info.Size())))
			}
			data, err := os.ReadFile(param)
			if err != nil {
				return fmt.Errorf("could not read file %v: %v", param, err)
			}
			size = info.Size()
			job = l.StartBytes(ctx, data, filepath.Base(param))
		} else {
			if filename, err = l.Resolve(param); err != nil {
				return err
			}
			if info, err := os.Stat(filename); err == nil {
				size = info.Size()
			}
			job = l.Start(ctx, param)
		}
		song, err := job.Wait()
		if err != nil {
			return err
		}
		if !*noOut {
			var contents []byte
			var extension string
			if *jsonOut {
				contents, err = json.Marshal(song)
				extension = ".json"
			} else {
				contents, err = yaml.Marshal(song)
				extension = ".yml"
			}
			if err != nil {
				return fmt.Errorf("could not marshal the song: %v", err)
			}
			if err := output(filename, extension, contents); err != nil {
				return fmt.Errorf("error outputting %v file: %v", extension, err)
			}
		}
		if !*quiet {
			text, err := report.render(song, filename, size)
			if err != nil {
				return fmt.Errorf("could not render report: %v", err)
			}
			printMu.Lock()
			fmt.Fprint(os.Stderr, text)
			printMu.Unlock()
		}
		return nil
	}
	var files []string
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			for _, pattern := range []string{"*.mid", "*.midi"} {
				matches, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					logger.Error("could not glob the path", "path", param, "err", err)
					continue
				}
				files = append(files, matches...)
			}
		} else {
			files = append(files, param)
		}
	}
	if *parallel < 1 {
		*parallel = 1
	}
	var failed atomic.Bool
	wg := sizedwaitgroup.New(*parallel)
	for _, file := range files {
		wg.Add()
		go func(file string) {
			defer wg.Done()
			if err := process(file); err != nil {
				logger.Error("could not process file", "file", file, "err", err)
				failed.Store(true)
			}
		}(file)
	}
	wg.Wait()
	if failed.Load() {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Converts MIDI songs into note block songs. Input .mid files or directories, outputs .yml or .json note lists.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}

// songName is used in the report when the song has no name.
func songName(song *noteblock.Song, filename string) string {
	if song.Name != "" {
		return song.Name
	}
	return filepath.Base(filename)
}
