// Package gpx decodes GPX files and selects the track to analyze.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNoTracks is returned when a file contains no <trk> element.
	ErrNoTracks = errors.New("file contains no tracks")

	// ErrAmbiguousTrack is returned when a file holds several tracks and no
	// index was given.
	ErrAmbiguousTrack = errors.New("file has more than one track")

	// ErrTrackIndex is returned when the requested track does not exist.
	ErrTrackIndex = errors.New("track index out of range")
)

// Parse reads and parses a GPX file
func Parse(filename string) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader and checks that every point has a
// valid latitude and longitude.
func ParseReader(r io.Reader) (*GPX, error) {
	decoder := xml.NewDecoder(r)

	var gpxData GPX
	if err := decoder.Decode(&gpxData); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	for trackIdx, track := range gpxData.Tracks {
		for segIdx, segment := range track.Segments {
			for ptIdx, point := range segment.Points {
				if !point.LatLng().IsValid() {
					return nil, fmt.Errorf("track %d segment %d point %d: invalid position lat=%v lon=%v",
						trackIdx, segIdx, ptIdx, point.Lat, point.Lon)
				}
			}
		}
	}

	return &gpxData, nil
}

// SelectTrack returns the track at index. A negative index means none was
// given, which is only allowed when the file has exactly one track.
func (g *GPX) SelectTrack(index int) (*Track, error) {
	n := len(g.Tracks)
	switch {
	case n == 0:
		return nil, ErrNoTracks
	case index < 0 && n > 1:
		return nil, fmt.Errorf("%w: use --track <0..%d> to pick one", ErrAmbiguousTrack, n-1)
	case index < 0:
		index = 0
	case index >= n:
		plural := "s"
		if n == 1 {
			plural = ""
		}
		return nil, fmt.Errorf("%w: file has %d track%s, but index was %d (indices start at 0)",
			ErrTrackIndex, n, plural, index)
	}
	return &g.Tracks[index], nil
}

// FlattenPoints returns the points of all segments in order
func (t *Track) FlattenPoints() []Point {
	var points []Point

	for segIdx, segment := range t.Segments {
		for ptIdx, point := range segment.Points {
			point.SegIdx = segIdx
			point.PtIdx = ptIdx
			points = append(points, point)
		}
	}

	return points
}

// Summary returns basic counts about the GPX data
func (g *GPX) Summary() (trackCount int, segmentCount int, pointCount int) {
	trackCount = len(g.Tracks)

	for _, track := range g.Tracks {
		segmentCount += len(track.Segments)
		for _, segment := range track.Segments {
			pointCount += len(segment.Points)
		}
	}

	return
}
