package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPointTrack = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk>
		<name>Morning</name>
		<trkseg>
			<trkpt lat="46.0" lon="7.0"><ele>1000</ele><time>2025-01-01T10:00:00Z</time></trkpt>
			<trkpt lat="46.001" lon="7.0"><ele>1010</ele><time>2025-01-01T10:00:30Z</time></trkpt>
		</trkseg>
		<trkseg>
			<trkpt lat="46.002" lon="7.0"><ele>1005</ele><time>2025-01-01T10:01:00Z</time></trkpt>
		</trkseg>
	</trk>
</gpx>`

const twoTracks = `<gpx version="1.1">
	<trk><name>a</name><trkseg><trkpt lat="46.0" lon="7.0"/></trkseg></trk>
	<trk><name>b</name><trkseg>
		<trkpt lat="46.0" lon="7.0"><time>2025-01-01T10:00:00Z</time></trkpt>
		<trkpt lat="46.0" lon="7.001"><time>2025-01-01T10:00:00Z</time></trkpt>
	</trkseg></trk>
</gpx>`

func writeGPX(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.gpx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunText(t *testing.T) {
	path := writeGPX(t, twoPointTrack)

	code, stdout, stderr := runCLI(path)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "total distance  222.30 m")
	assert.Contains(t, stdout, "total time      1:00")
	assert.Contains(t, stdout, "mean speed      13.34 km/h")
	assert.Contains(t, stdout, "median speed    13.34 km/h")
	assert.Contains(t, stdout, "max elevation   1010.00 m")
	assert.Contains(t, stdout, "min elevation   1000.00 m")
	assert.Empty(t, stderr)
}

func TestRunFlagsAfterPath(t *testing.T) {
	path := writeGPX(t, twoPointTrack)

	code, stdout, stderr := runCLI(path, "-s", "distance,time", "-format", "raw", "-u", "ft")
	require.Equal(t, exitOK, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "729."), lines[0])
	assert.Equal(t, "60000", lines[1])
}

func TestRunJSON(t *testing.T) {
	path := writeGPX(t, twoPointTrack)

	code, stdout, stderr := runCLI("-format", "json", "-v", "m/s", "-stats", "median-speed,max-elevation", path)
	require.Equal(t, exitOK, code, stderr)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "m/s", got["units"]["speed"])
	assert.InDelta(t, 3.705, got["median_speed"]["value"], 0.01)
	assert.Equal(t, 1010.0, got["max_elevation"]["value"])
	assert.NotContains(t, got, "distance")
}

func TestRunTrackSelection(t *testing.T) {
	path := writeGPX(t, twoTracks)

	code, _, stderr := runCLI(path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "more than one track")

	code, _, stderr = runCLI("-t", "7", path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "file has 2 tracks, but index was 7")

	code, stdout, stderr := runCLI("-track", "1", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "total distance  77.")
	assert.Contains(t, stdout, "mean speed      error: mean speed: zero elapsed time")
	assert.Contains(t, stdout, "max elevation   error: max elevation: no point has an elevation")

	code, stdout, _ = runCLI("-t", "0", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "total distance  0.00 m")
	assert.Contains(t, stdout, "total time      error: total time: first point: missing timestamp")
}

func TestRunUsageErrors(t *testing.T) {
	path := writeGPX(t, twoPointTrack)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no path", nil, "missing GPX file path"},
		{"two paths", []string{path, path}, "expected one GPX file"},
		{"bad distance unit", []string{"-u", "km", path}, "invalid distance unit"},
		{"bad speed unit", []string{"-v", "knots", path}, "invalid speed unit"},
		{"bad stat", []string{"-s", "pace", path}, "unknown statistic"},
		{"bad format", []string{"-format", "xml", path}, "invalid format"},
		{"unknown flag", []string{"-x", path}, "flag provided but not defined"},
		{"directory", []string{t.TempDir()}, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestRunRuntimeErrors(t *testing.T) {
	code, _, stderr := runCLI(filepath.Join(t.TempDir(), "missing.gpx"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "failed to open file")

	code, _, stderr = runCLI(writeGPX(t, "<gpx><trk"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "failed to parse GPX")

	code, _, stderr = runCLI(writeGPX(t, `<gpx version="1.1"></gpx>`))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "file contains no tracks")
}

func TestRunVerboseAndVersion(t *testing.T) {
	path := writeGPX(t, twoPointTrack)

	code, _, stderr := runCLI("-verbose", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Reading GPX file")
	assert.Contains(t, stderr, "1 tracks, 2 segments, 3 points")

	code, stdout, _ := runCLI("-version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "gpxstat v")
}
