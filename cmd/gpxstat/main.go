package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/planbiir/gpxstat/internal/gpx"
	"github.com/planbiir/gpxstat/internal/monitoring"
	"github.com/planbiir/gpxstat/internal/report"
	"github.com/planbiir/gpxstat/internal/stats"
	"github.com/planbiir/gpxstat/internal/track"
	"github.com/planbiir/gpxstat/internal/units"
)

const version = "gpxstat v0.3.0 - GPX track statistics"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	path       string
	track      int
	distUnits  string
	speedUnits string
	statList   string
	format     string
	verbose    bool
	version    bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("gpxstat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.track, "track", -1, "Track to analyze, starting at 0 (only needed if the file has several)")
	fs.IntVar(&opts.track, "t", -1, "Shorthand for -track")
	fs.StringVar(&opts.distUnits, "dist-units", "m", "Distance units: m or ft")
	fs.StringVar(&opts.distUnits, "u", "m", "Shorthand for -dist-units")
	fs.StringVar(&opts.speedUnits, "speed-units", "", "Speed units: km/h, mi/h, m/s, ft/s, min/km, min/mi (default km/h, or mi/h with -u ft)")
	fs.StringVar(&opts.speedUnits, "v", "", "Shorthand for -speed-units")
	fs.StringVar(&opts.statList, "stats", "all", "Comma-separated statistics: "+stats.All.String())
	fs.StringVar(&opts.statList, "s", "all", "Shorthand for -stats")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, raw or json")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log progress to stderr")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "gpxstat - Summary statistics for a GPX track\n\n")
		fmt.Fprintf(stderr, "usage: gpxstat [options] /path/to/file.gpx\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  gpxstat track.gpx\n")
		fmt.Fprintf(stderr, "  gpxstat -t 1 -u ft -v min/mi \"Morning Run.gpx\"\n")
		fmt.Fprintf(stderr, "  gpxstat -s distance,median-speed -format json track.gpx\n\n")
		fmt.Fprintf(stderr, "options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs accepts flags before and after the file path.
func parseArgs(fs *flag.FlagSet, args []string, opts *options) error {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	switch len(positional) {
	case 0:
		if opts.version {
			return nil
		}
		return errors.New("missing GPX file path")
	case 1:
		opts.path = positional[0]
		return nil
	default:
		return fmt.Errorf("expected one GPX file, got %d arguments", len(positional))
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := parseArgs(fs, args, &opts); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fs.Usage()
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	if opts.verbose {
		monitoring.SetLogger(log.New(stderr, "", 0).Printf)
	} else {
		monitoring.SetLogger(nil)
	}

	reportOpts, err := buildReportOptions(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if info, err := os.Stat(opts.path); err == nil && info.IsDir() {
		fmt.Fprintf(stderr, "Error: %s is a directory\n", opts.path)
		return exitUsage
	}

	start := time.Now()

	monitoring.Logf("📖 Reading GPX file: %s", opts.path)
	gpxData, err := gpx.Parse(opts.path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading GPX file %s: %v\n", opts.path, err)
		return exitError
	}

	tracks, segments, points := gpxData.Summary()
	monitoring.Logf("📊 %d tracks, %d segments, %d points", tracks, segments, points)

	trk, err := gpxData.SelectTrack(opts.track)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", opts.path, err)
		return exitError
	}

	raw := rawPoints(trk.FlattenPoints())
	monitoring.Logf("🧭 Track %q: %d points across %d segments", trk.Name, len(raw), len(trk.Segments))

	derived := track.Derive(raw)
	result := stats.Compute(derived, reportOpts.Stats)

	if err := report.Write(stdout, result, reportOpts); err != nil {
		fmt.Fprintf(stderr, "Error writing report: %v\n", err)
		return exitError
	}

	monitoring.Logf("✅ Done in %v", time.Since(start))
	return exitOK
}

func buildReportOptions(opts options) (report.Options, error) {
	ro := report.DefaultOptions()

	var err error
	if ro.Format, err = report.ParseFormat(opts.format); err != nil {
		return ro, err
	}
	if ro.DistUnit, err = units.ParseDistUnit(opts.distUnits); err != nil {
		return ro, err
	}

	ro.SpeedUnit = units.DefaultSpeedUnit(ro.DistUnit)
	if opts.speedUnits != "" {
		if ro.SpeedUnit, err = units.ParseSpeedUnit(opts.speedUnits); err != nil {
			return ro, err
		}
	}

	if ro.Stats, err = stats.ParseSet(opts.statList); err != nil {
		return ro, err
	}
	return ro, nil
}

// rawPoints converts parsed GPX points to the input of track.Derive.
func rawPoints(points []gpx.Point) []track.RawPoint {
	raw := make([]track.RawPoint, len(points))
	for i, p := range points {
		raw[i] = track.RawPoint{
			Position:  p.LatLng(),
			Elevation: p.Elevation,
		}
		if p.Time != nil {
			t := p.Time.Time
			raw[i].Time = &t
		}
	}
	return raw
}
