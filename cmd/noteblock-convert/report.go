package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/vsariola/noteblock"
)

const defaultReport = `{{ header .Name }}
  {{ .Song.Stats }}
  length {{ .Length }}, {{ len .Song.Notes }} notes{{ if .Size }}, {{ .Size }}{{ end }}
{{- range .Instruments }}
  {{ .Name | printf "%-16s" }} {{ .Count | printf "%6d" }} {{ repeat (div (mul .Count 30) $.MaxCount | int) "#" }}
{{- end }}
`

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

type (
	report struct {
		tmpl *template.Template
	}

	reportData struct {
		Name        string
		Song        *noteblock.Song
		Length      string
		Size        string
		Instruments []instrumentUsage
		MaxCount    int
	}

	instrumentUsage struct {
		Name  string
		Count int
	}
)

// newReport parses the report template from path, or the built-in one if path
// is empty.
func newReport(path string) (*report, error) {
	funcs := sprig.TxtFuncMap()
	funcs["header"] = func(s string) string { return headerStyle.Render(s) }
	var tmpl *template.Template
	var err error
	if path == "" {
		tmpl, err = template.New("report").Funcs(funcs).Parse(defaultReport)
	} else {
		tmpl, err = template.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse report template: %v", err)
	}
	return &report{tmpl: tmpl}, nil
}

func (r *report) render(song *noteblock.Song, filename string, size int64) (string, error) {
	data := reportData{
		Name:   songName(song, filename),
		Song:   song,
		Length: durafmt.Parse(song.Duration()).LimitFirstN(2).String(),
	}
	if size > 0 {
		data.Size = humanize.IBytes(uint64(size))
	}
	for instr, count := range song.InstrumentCounts() {
		data.Instruments = append(data.Instruments, instrumentUsage{instr.DisplayName(), count})
		if count > data.MaxCount {
			data.MaxCount = count
		}
	}
	sort.Slice(data.Instruments, func(i, j int) bool {
		if data.Instruments[i].Count != data.Instruments[j].Count {
			return data.Instruments[i].Count > data.Instruments[j].Count
		}
		return data.Instruments[i].Name < data.Instruments[j].Name
	})
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
