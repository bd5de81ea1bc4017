// Package report renders track statistics for the terminal or for scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/planbiir/gpxstat/internal/stats"
	"github.com/planbiir/gpxstat/internal/units"
)

// Format selects how statistics are written.
type Format string

const (
	Text Format = "text" // aligned "label  value" lines
	Raw  Format = "raw"  // one bare number per line
	JSON Format = "json" // a single JSON object
)

// ParseFormat parses text, raw or json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, Raw, JSON:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("invalid format %q (valid: text, raw, json)", s)
	}
}

// Options control what is written and in which units.
type Options struct {
	Format    Format
	DistUnit  units.DistUnit
	SpeedUnit units.SpeedUnit
	Stats     stats.Set
}

// DefaultOptions returns text output of every statistic in metres and km/h.
func DefaultOptions() Options {
	return Options{
		Format:    Text,
		DistUnit:  units.Metres,
		SpeedUnit: units.DefaultSpeedUnit(units.Metres),
		Stats:     stats.All,
	}
}

var labels = map[stats.Stat]string{
	stats.TotalDistance: "total distance",
	stats.TotalTime:     "total time",
	stats.MeanSpeed:     "mean speed",
	stats.MedianSpeed:   "median speed",
	stats.MaxElevation:  "max elevation",
	stats.MinElevation:  "min elevation",
}

// row is one statistic prepared for output.
type row struct {
	stat  stats.Stat
	value float64 // in display units
	text  string  // pretty form
	err   error
}

func rows(s stats.Stats, opts Options) []row {
	var out []row
	for _, st := range stats.Order {
		if !opts.Stats.Has(st) {
			continue
		}
		if r, ok := prepare(st, s, opts); ok {
			out = append(out, r)
		}
	}
	return out
}

func prepare(st stats.Stat, s stats.Stats, opts Options) (row, bool) {
	dist := func(res stats.Result[float64]) (row, bool) {
		if !res.Computed {
			return row{}, false
		}
		return row{
			stat:  st,
			value: units.ConvertDist(res.Value, opts.DistUnit),
			text:  units.PrettyDist(res.Value, opts.DistUnit),
			err:   res.Err,
		}, true
	}
	speed := func(res stats.Result[float64]) (row, bool) {
		if !res.Computed {
			return row{}, false
		}
		return row{
			stat:  st,
			value: units.ConvertSpeed(res.Value, opts.SpeedUnit),
			text:  units.PrettySpeed(res.Value, opts.SpeedUnit),
			err:   res.Err,
		}, true
	}

	switch st {
	case stats.TotalDistance:
		return dist(s.TotalDistance)
	case stats.TotalTime:
		if !s.TotalTime.Computed {
			return row{}, false
		}
		return row{
			stat:  st,
			value: float64(s.TotalTime.Value.Milliseconds()),
			text:  units.PrettyDuration(s.TotalTime.Value),
			err:   s.TotalTime.Err,
		}, true
	case stats.MeanSpeed:
		return speed(s.MeanSpeed)
	case stats.MedianSpeed:
		return speed(s.MedianSpeed)
	case stats.MaxElevation:
		return dist(s.MaxElevation)
	case stats.MinElevation:
		return dist(s.MinElevation)
	}
	return row{}, false
}

// Write renders the computed statistics selected by opts.Stats.
func Write(w io.Writer, s stats.Stats, opts Options) error {
	switch opts.Format {
	case Raw:
		return writeRaw(w, rows(s, opts))
	case JSON:
		return writeJSON(w, rows(s, opts), opts)
	default:
		return writeText(w, rows(s, opts))
	}
}

func writeText(w io.Writer, rs []row) error {
	var b strings.Builder
	elevation := false
	for i, r := range rs {
		isElev := r.stat == stats.MaxElevation || r.stat == stats.MinElevation
		if isElev && !elevation && i > 0 {
			b.WriteString("\n")
		}
		elevation = elevation || isElev

		if r.err != nil {
			fmt.Fprintf(&b, "%-15s error: %v\n", labels[r.stat], r.err)
			continue
		}
		fmt.Fprintf(&b, "%-15s %s\n", labels[r.stat], r.text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRaw(w io.Writer, rs []row) error {
	var b strings.Builder
	for _, r := range rs {
		if r.err != nil {
			fmt.Fprintf(&b, "error: %v\n", r.err)
			continue
		}
		if r.stat == stats.TotalTime {
			fmt.Fprintf(&b, "%d\n", int64(r.value))
			continue
		}
		fmt.Fprintf(&b, "%g\n", r.value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonUnits struct {
	Distance string `json:"distance"`
	Speed    string `json:"speed"`
	Time     string `json:"time"`
}

type jsonStat struct {
	Value *float64 `json:"value,omitempty"`
	Text  string   `json:"text,omitempty"`
	Error string   `json:"error,omitempty"`
}

type jsonReport struct {
	Units         jsonUnits `json:"units"`
	TotalDistance *jsonStat `json:"distance,omitempty"`
	TotalTime     *jsonStat `json:"time,omitempty"`
	MeanSpeed     *jsonStat `json:"mean_speed,omitempty"`
	MedianSpeed   *jsonStat `json:"median_speed,omitempty"`
	MaxElevation  *jsonStat `json:"max_elevation,omitempty"`
	MinElevation  *jsonStat `json:"min_elevation,omitempty"`
}

func writeJSON(w io.Writer, rs []row, opts Options) error {
	rep := jsonReport{
		Units: jsonUnits{
			Distance: opts.DistUnit.String(),
			Speed:    opts.SpeedUnit.String(),
			Time:     "ms",
		},
	}

	for _, r := range rs {
		entry := &jsonStat{}
		switch {
		case r.err != nil:
			entry.Error = r.err.Error()
		case math.IsInf(r.value, 0) || math.IsNaN(r.value):
			// JSON has no representation for these; pace at zero speed.
			entry.Text = r.text
		default:
			v := r.value
			entry.Value = &v
			entry.Text = r.text
		}

		switch r.stat {
		case stats.TotalDistance:
			rep.TotalDistance = entry
		case stats.TotalTime:
			rep.TotalTime = entry
		case stats.MeanSpeed:
			rep.MeanSpeed = entry
		case stats.MedianSpeed:
			rep.MedianSpeed = entry
		case stats.MaxElevation:
			rep.MaxElevation = entry
		case stats.MinElevation:
			rep.MinElevation = entry
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
